//-------------------------------------------------------------------------
//
// posmart - Point-of-Sale Analytics Mart
//
// Copyright (c) 2025 - 2026, Beanlake Labs
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package mart

import (
	"sort"

	"github.com/shopspring/decimal"
)

// BuildFacts produces the canonical line-level fact set from the clean line
// items and the two dimensions. transaction_id is the declared primary key:
// duplicates fail the build with a UniquenessError. Foreign keys are checked
// against the dimensions and dangling references fail with a
// ReferentialIntegrityError.
//
// Revenue is quantity x unit_price. Unit prices carry at most 2 fractional
// digits and quantities are integers, so the product is exact at source
// precision; nothing is rounded here.
func BuildFacts(items []LineItem, stores []Store, products []Product) (*FactSet, error) {
	storeIDs := make(map[int]struct{}, len(stores))
	for _, s := range stores {
		storeIDs[s.ID] = struct{}{}
	}
	productIDs := make(map[int]struct{}, len(products))
	for _, p := range products {
		productIDs[p.ID] = struct{}{}
	}

	seen := make(map[int64]int, len(items))
	for _, it := range items {
		seen[it.TransactionID]++
	}
	var dupes []int64
	for id, n := range seen {
		if n > 1 {
			dupes = append(dupes, id)
		}
	}
	if len(dupes) > 0 {
		sort.Slice(dupes, func(i, j int) bool { return dupes[i] < dupes[j] })
		return nil, &UniquenessError{Column: "transaction_id", Keys: dupes}
	}

	if err := checkReferences(items, storeIDs, productIDs); err != nil {
		return nil, err
	}

	facts := make([]Fact, 0, len(items))
	for _, it := range items {
		facts = append(facts, Fact{
			TransactionID: it.TransactionID,
			Date:          it.Date,
			Time:          it.Time,
			StoreID:       it.StoreID,
			ProductID:     it.ProductID,
			Quantity:      it.Quantity,
			UnitPrice:     it.UnitPrice,
			Revenue:       decimal.NewFromInt(int64(it.Quantity)).Mul(it.UnitPrice),
		})
	}
	return newFactSet(facts), nil
}

func checkReferences(items []LineItem, storeIDs, productIDs map[int]struct{}) error {
	danglingStores := make(map[int]struct{})
	danglingProducts := make(map[int]struct{})
	for _, it := range items {
		if _, ok := storeIDs[it.StoreID]; !ok {
			danglingStores[it.StoreID] = struct{}{}
		}
		if _, ok := productIDs[it.ProductID]; !ok {
			danglingProducts[it.ProductID] = struct{}{}
		}
	}
	if len(danglingStores) > 0 {
		return &ReferentialIntegrityError{
			Dimension: "store",
			Column:    "store_id",
			Keys:      sortedKeys(danglingStores),
		}
	}
	if len(danglingProducts) > 0 {
		return &ReferentialIntegrityError{
			Dimension: "product",
			Column:    "product_id",
			Keys:      sortedKeys(danglingProducts),
		}
	}
	return nil
}

func sortedKeys(set map[int]struct{}) []int {
	keys := make([]int, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}
