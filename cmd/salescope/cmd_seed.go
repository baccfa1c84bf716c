// Copyright 2026 Vendalabs
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//	http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
package main

import (
	"database/sql"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/vendalabs/salescope/internal/log"
	"github.com/vendalabs/salescope/pkg/store"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Create the demo SQLite database",
	Long: `Creates the sales schema and loads the demonstration dataset
(January to March 2025) into the configured SQLite database.

An existing database file is replaced.`,
	RunE: runSeed,
}

func init() {
	rootCmd.AddCommand(seedCmd)
}

func runSeed(cmd *cobra.Command, args []string) error {
	if cfg.Database.Driver != "" && cfg.Database.Driver != "sqlite" {
		return fmt.Errorf("seed supports only the sqlite driver, got %q", cfg.Database.Driver)
	}

	path := cfg.Database.Path
	if _, err := os.Stat(path); err == nil {
		if err := os.Remove(path); err != nil {
			return fmt.Errorf("failed to remove existing database: %w", err)
		}
		log.Info("removed existing database", zap.String("path", path))
	}

	st, err := store.OpenSQLite(path)
	if err != nil {
		return fmt.Errorf("failed to create database: %w", err)
	}
	defer st.Close()

	db := st.DB()
	if err := createSchema(db); err != nil {
		return err
	}
	if err := loadDemoData(db); err != nil {
		return err
	}

	log.Info("demo database ready", zap.String("path", path))
	fmt.Printf("Demo database created at %s\n", path)
	return nil
}

func createSchema(db *sql.DB) error {
	statements := []string{
		`CREATE TABLE products (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			sku VARCHAR(50) UNIQUE NOT NULL,
			name VARCHAR(255) NOT NULL,
			category VARCHAR(100),
			price NUMERIC(10, 2)
		)`,
		`CREATE TABLE customers (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name VARCHAR(255) NOT NULL,
			email VARCHAR(255) UNIQUE NOT NULL,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE sales (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			product_id INTEGER REFERENCES products(id),
			customer_id INTEGER REFERENCES customers(id),
			quantity INTEGER NOT NULL,
			total_amount NUMERIC(10, 2) NOT NULL,
			sale_date TIMESTAMP NOT NULL
		)`,
	}
	for _, stmt := range statements {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("failed to create schema: %w", err)
		}
	}
	return nil
}

type demoSale struct {
	productID  int
	customerID int
	quantity   int
	total      float64
	date       string
}

func loadDemoData(db *sql.DB) error {
	products := [][]interface{}{
		{"SKU001", "Product A", "Category 1", 10.99},
		{"SKU002", "Product B", "Category 1", 20.50},
		{"SKU003", "Product C", "Category 2", 15.75},
		{"SKU004", "Product D", "Category 3", 30.00},
		{"SKU005", "Product E", "Category 4", 25.00},
	}
	for _, p := range products {
		if _, err := db.Exec(
			"INSERT INTO products (sku, name, category, price) VALUES (?, ?, ?, ?)",
			p...); err != nil {
			return fmt.Errorf("failed to insert product: %w", err)
		}
	}

	customers := [][]interface{}{
		{"John Doe", "john@example.com"},
		{"Jane Smith", "jane@example.com"},
		{"Bob Johnson", "bob@example.com"},
		{"Alice Brown", "alice@example.com"},
		{"Charlie Davis", "charlie@example.com"},
	}
	for _, c := range customers {
		if _, err := db.Exec(
			"INSERT INTO customers (name, email) VALUES (?, ?)",
			c...); err != nil {
			return fmt.Errorf("failed to insert customer: %w", err)
		}
	}

	// Timestamps deliberately include early-morning and late-evening
	// sales so date-range mistakes are visible in demo answers.
	sales := []demoSale{
		{4, 1, 4, 120.00, "2025-01-17 12:22:49"},
		{5, 1, 7, 175.00, "2025-01-28 04:04:17"},
		{5, 4, 4, 100.00, "2025-02-04 11:58:16"},
		{1, 2, 2, 21.98, "2025-01-05 10:30:45"},
		{2, 3, 1, 20.50, "2025-01-06 15:15:10"},
		{3, 5, 3, 47.25, "2025-01-08 09:45:22"},
		{4, 2, 1, 30.00, "2025-01-10 17:22:30"},
		{5, 4, 5, 125.00, "2025-01-12 11:00:00"},
		{1, 3, 2, 21.98, "2025-01-14 18:25:45"},
		{2, 5, 6, 123.00, "2025-01-15 13:12:22"},
		{3, 1, 2, 31.50, "2025-01-18 08:10:33"},
		{4, 4, 1, 30.00, "2025-01-20 14:05:20"},
		{5, 2, 3, 75.00, "2025-01-23 19:30:40"},
		{1, 5, 2, 21.98, "2025-01-25 10:45:10"},
		{2, 4, 4, 82.00, "2025-01-29 16:20:50"},
		{3, 2, 1, 15.75, "2025-02-01 12:00:00"},
		{4, 5, 2, 60.00, "2025-02-03 18:40:30"},
		{5, 1, 8, 200.00, "2025-02-05 11:25:00"},
		{1, 4, 3, 32.97, "2025-02-07 14:50:10"},
		{2, 3, 2, 41.00, "2025-02-08 10:20:15"},
		{3, 5, 4, 63.00, "2025-02-10 16:45:55"},
		{4, 2, 1, 30.00, "2025-02-12 20:30:00"},
		{5, 3, 2, 50.00, "2025-02-15 09:10:10"},
		{1, 1, 6, 65.94, "2025-02-16 13:35:30"},
		{2, 4, 2, 41.00, "2025-02-18 15:00:00"},
		{3, 2, 3, 47.25, "2025-02-19 11:30:45"},
		{4, 5, 2, 60.00, "2025-02-21 14:10:22"},
		{5, 4, 1, 25.00, "2025-02-22 19:45:55"},
		{1, 2, 7, 76.93, "2025-02-24 12:10:10"},
		{2, 1, 4, 82.00, "2025-02-25 17:30:50"},
		{3, 3, 5, 78.75, "2025-02-27 09:55:00"},
		{4, 5, 3, 90.00, "2025-02-28 14:25:30"},
		{5, 2, 9, 225.00, "2025-03-02 10:00:00"},
	}
	for _, s := range sales {
		if _, err := db.Exec(
			"INSERT INTO sales (product_id, customer_id, quantity, total_amount, sale_date) VALUES (?, ?, ?, ?, ?)",
			s.productID, s.customerID, s.quantity, s.total, s.date); err != nil {
			return fmt.Errorf("failed to insert sale: %w", err)
		}
	}

	return nil
}
