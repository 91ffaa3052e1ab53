//-------------------------------------------------------------------------
//
// posmart - Point-of-Sale Analytics Mart
//
// Copyright (c) 2025 - 2026, Beanlake Labs
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package datagen

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/beanlake/posmart/internal/logging"
)

// Header of a point-of-sale export.
var header = []string{
	"transaction_id", "transaction_date", "transaction_time",
	"transaction_qty", "store_id", "store_location",
	"product_id", "unit_price", "product_category",
	"product_type", "product_detail",
}

type storeDef struct {
	id       int
	location string
	weight   int
}

type productDef struct {
	id       int
	category string
	ptype    string
	detail   string
	price    string
	weight   int
}

var sampleStores = []storeDef{
	{3, "Astoria", 34},
	{5, "Lower Manhattan", 33},
	{8, "Hell's Kitchen", 33},
}

var sampleProducts = []productDef{
	{22, "Coffee", "Drip coffee", "Our Old Time Diner Blend Rg", "2.50", 14},
	{27, "Coffee", "Drip coffee", "Our Old Time Diner Blend Lg", "3.00", 12},
	{32, "Coffee", "Gourmet brewed coffee", "Ethiopia Rg", "3.00", 13},
	{38, "Coffee", "Barista Espresso", "Latte", "4.25", 11},
	{40, "Coffee", "Barista Espresso", "Cappuccino Lg", "4.50", 9},
	{44, "Drinking Chocolate", "Hot chocolate", "Dark chocolate Lg", "4.50", 6},
	{49, "Tea", "Brewed Black tea", "English Breakfast Rg", "2.50", 8},
	{57, "Tea", "Brewed Chai tea", "Spicy Eye Opener Chai Lg", "4.25", 7},
	{59, "Tea", "Brewed herbal tea", "Peppermint Rg", "2.50", 6},
	{63, "Bakery", "Scone", "Cranberry Scone", "3.50", 5},
	{69, "Bakery", "Pastry", "Chocolate Croissant", "3.75", 5},
	{77, "Coffee beans", "Organic Beans", "Brazilian", "18.00", 2},
	{84, "Loose Tea", "Chai tea", "Spicy Eye Opener Chai", "8.95", 1},
	{87, "Branded", "Housewares", "I Need My Bean! Latte cup", "14.00", 1},
}

// SampleConfig configures synthetic export generation.
type SampleConfig struct {
	// Rows is the number of line items to generate.
	Rows int

	// Seed makes the output reproducible. Zero picks a random seed.
	Seed uint64

	// Start and End bound the generated calendar dates, inclusive.
	Start time.Time
	End   time.Time
}

// DefaultSampleConfig returns the default generation window: the first half
// of 2023, matching a typical export.
func DefaultSampleConfig(rows int) SampleConfig {
	return SampleConfig{
		Rows:  rows,
		Start: time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2023, 6, 30, 0, 0, 0, 0, time.UTC),
	}
}

// WriteSample generates a synthetic point-of-sale export. Line items are
// emitted in order groups of 1 to 4 lines sharing one (date, time, store)
// stamp, so order reconstruction has something to find. Transaction ids are
// sequential from 1.
func WriteSample(w io.Writer, cfg SampleConfig) error {
	if cfg.Rows < 0 {
		return fmt.Errorf("invalid row count %d", cfg.Rows)
	}

	var faker *Faker
	if cfg.Seed == 0 {
		faker = NewFaker()
	} else {
		faker = NewFakerWithSeed(cfg.Seed)
	}

	profile := DemandProfile{}
	days := int(cfg.End.Sub(cfg.Start).Hours()/24) + 1
	if days < 1 {
		return fmt.Errorf("invalid date range %s .. %s",
			cfg.Start.Format("2006-01-02"), cfg.End.Format("2006-01-02"))
	}

	hours := make([]int, 24)
	for h := range hours {
		hours[h] = h
	}
	orderSizes := []int{1, 2, 3, 4}
	orderSizeWeights := []int{55, 25, 12, 8}
	quantities := []int{1, 2, 3}
	quantityWeights := []int{70, 22, 8}

	productWeights := make([]int, len(sampleProducts))
	for i, p := range sampleProducts {
		productWeights[i] = p.weight
	}
	storeWeights := make([]int, len(sampleStores))
	for i, s := range sampleStores {
		storeWeights[i] = s.weight
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return err
	}

	txID := int64(1)
	written := 0
	for written < cfg.Rows {
		date := cfg.Start.AddDate(0, 0, faker.Int(0, days-1))
		hour := ChooseWeighted(faker, hours, profile.HourWeights(date.Weekday()))
		clock := fmt.Sprintf("%02d:%02d:%02d", hour, faker.Int(0, 59), faker.Int(0, 59))
		store := ChooseWeighted(faker, sampleStores, storeWeights)

		size := ChooseWeighted(faker, orderSizes, orderSizeWeights)
		if size > cfg.Rows-written {
			size = cfg.Rows - written
		}

		for i := 0; i < size; i++ {
			product := ChooseWeighted(faker, sampleProducts, productWeights)
			qty := ChooseWeighted(faker, quantities, quantityWeights)

			row := []string{
				strconv.FormatInt(txID, 10),
				date.Format("2006-01-02"),
				clock,
				strconv.Itoa(qty),
				strconv.Itoa(store.id),
				store.location,
				strconv.Itoa(product.id),
				product.price,
				product.category,
				product.ptype,
				product.detail,
			}
			if err := cw.Write(row); err != nil {
				return err
			}
			txID++
			written++
		}
	}

	cw.Flush()
	return cw.Error()
}

// WriteSampleFile generates a synthetic export and writes it to disk.
func WriteSampleFile(path string, cfg SampleConfig) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create sample file: %w", err)
	}
	defer f.Close()

	if err := WriteSample(f, cfg); err != nil {
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}

	logging.Info().
		Str("file", path).
		Int("rows", cfg.Rows).
		Msg("Wrote sample export")

	return nil
}
