package main

import (
	"database/sql"
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/urfave/cli/v2"
)

// openCSV returns a reader positioned after the header row.
func openCSV(path string) (*csv.Reader, *os.File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open %s: %w", path, err)
	}

	reader := csv.NewReader(f)
	if _, err := reader.Read(); err != nil {
		f.Close()
		return nil, nil, fmt.Errorf("failed to read header of %s: %w", path, err)
	}
	return reader, f, nil
}

func parseFloat(field, value string) (float64, error) {
	v, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", field, value, err)
	}
	return v, nil
}

// seedIngredients loads the catalog. Rows are upserted by name so the
// seeder is safe to rerun.
func seedIngredients(c *cli.Context) error {
	reader, f, err := openCSV(c.String("file"))
	if err != nil {
		return err
	}
	defer f.Close()

	db := dbFrom(c)
	start := time.Now()
	count := 0

	for {
		// name, unit, category, current_stock, min_stock_level
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to read row: %w", err)
		}
		if len(record) < 5 {
			return fmt.Errorf("expected 5 columns, got %d", len(record))
		}

		stock, err := parseFloat("current_stock", record[3])
		if err != nil {
			return err
		}

		var minStock sql.NullFloat64
		if record[4] != "" {
			v, err := parseFloat("min_stock_level", record[4])
			if err != nil {
				return err
			}
			minStock = sql.NullFloat64{Float64: v, Valid: true}
		}

		_, err = db.ExecContext(c.Context, `
			INSERT INTO ingredients (name, unit, category, current_stock, min_stock_level)
			VALUES ($1, $2, $3, $4, $5)
			ON CONFLICT (name) DO UPDATE SET
				unit = EXCLUDED.unit,
				category = EXCLUDED.category,
				current_stock = EXCLUDED.current_stock,
				min_stock_level = EXCLUDED.min_stock_level,
				updated_at = NOW()
		`, record[0], record[1], record[2], stock, minStock)
		if err != nil {
			return fmt.Errorf("failed to insert ingredient %q: %w", record[0], err)
		}
		count++
	}

	log.Printf("Seeded %d ingredients in %v", count, time.Since(start))
	return nil
}

// seedUsage appends daily usage rows. No upsert: duplicate rows for the
// same ingredient and date are valid and count independently.
func seedUsage(c *cli.Context) error {
	reader, f, err := openCSV(c.String("file"))
	if err != nil {
		return err
	}
	defer f.Close()

	db := dbFrom(c)
	start := time.Now()
	count := 0

	for {
		// ingredient_id, usage_date, quantity_used
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to read row: %w", err)
		}
		if len(record) < 3 {
			return fmt.Errorf("expected 3 columns, got %d", len(record))
		}

		quantity, err := parseFloat("quantity_used", record[2])
		if err != nil {
			return err
		}

		_, err = db.ExecContext(c.Context, `
			INSERT INTO ingredient_usage_daily (ingredient_id, usage_date, quantity_used)
			VALUES ($1, $2, $3)
		`, record[0], record[1], quantity)
		if err != nil {
			return fmt.Errorf("failed to insert usage row: %w", err)
		}
		count++
	}

	log.Printf("Seeded %d usage rows in %v", count, time.Since(start))
	return nil
}

// seedInvoices loads verified invoices and their line items. One
// invoice is created per unique supplier and date pair.
func seedInvoices(c *cli.Context) error {
	reader, f, err := openCSV(c.String("file"))
	if err != nil {
		return err
	}
	defer f.Close()

	db := dbFrom(c)
	start := time.Now()
	invoiceIDs := make(map[string]string)
	count := 0

	for {
		// supplier_name, invoice_date, description, ingredient_id, quantity, unit_cost, total_cost
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to read row: %w", err)
		}
		if len(record) < 7 {
			return fmt.Errorf("expected 7 columns, got %d", len(record))
		}

		key := record[0] + "|" + record[1]
		invoiceID, ok := invoiceIDs[key]
		if !ok {
			err := db.QueryRowContext(c.Context, `
				INSERT INTO invoices (supplier_name, invoice_date, status)
				VALUES ($1, $2, 'verified')
				RETURNING id
			`, record[0], record[1]).Scan(&invoiceID)
			if err != nil {
				return fmt.Errorf("failed to insert invoice for %q: %w", record[0], err)
			}
			invoiceIDs[key] = invoiceID
		}

		var quantity, unitCost, totalCost sql.NullFloat64
		for i, target := range []*sql.NullFloat64{&quantity, &unitCost, &totalCost} {
			value := record[4+i]
			if value == "" {
				continue
			}
			v, err := parseFloat("numeric column", value)
			if err != nil {
				return err
			}
			*target = sql.NullFloat64{Float64: v, Valid: true}
		}

		_, err = db.ExecContext(c.Context, `
			INSERT INTO invoice_items (invoice_id, description, ingredient_id, quantity, unit_cost, total_cost)
			VALUES ($1, $2, $3, $4, $5, $6)
		`, invoiceID, record[2], nullIfEmpty(record[3]), quantity, unitCost, totalCost)
		if err != nil {
			return fmt.Errorf("failed to insert invoice item: %w", err)
		}
		count++
	}

	log.Printf("Seeded %d invoice items across %d invoices in %v", count, len(invoiceIDs), time.Since(start))
	return nil
}
