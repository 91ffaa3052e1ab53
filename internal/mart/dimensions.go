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
	"fmt"
	"sort"
)

// BuildStoreDimension derives the store dimension from the clean line-item
// set. Every store_id must map to exactly one location; any violation fails
// the build with a DimensionIntegrityError naming the offending keys.
func BuildStoreDimension(items []LineItem) ([]Store, error) {
	tuples := make(map[int]map[string]struct{})
	for _, it := range items {
		set, ok := tuples[it.StoreID]
		if !ok {
			set = make(map[string]struct{})
			tuples[it.StoreID] = set
		}
		set[it.StoreLocation] = struct{}{}
	}

	if err := checkFunctionalDependency("store", tuples); err != nil {
		return nil, err
	}

	stores := make([]Store, 0, len(tuples))
	for id, set := range tuples {
		for loc := range set {
			stores = append(stores, Store{ID: id, Location: loc})
		}
	}
	sort.Slice(stores, func(i, j int) bool { return stores[i].ID < stores[j].ID })
	return stores, nil
}

// BuildProductDimension derives the product dimension. product_id must
// functionally determine the (category, type, detail) triple.
func BuildProductDimension(items []LineItem) ([]Product, error) {
	type triple struct {
		category, productType, detail string
	}
	tuples := make(map[int]map[string]struct{})
	byKey := make(map[int]map[string]triple)
	for _, it := range items {
		tr := triple{it.Category, it.ProductType, it.Detail}
		key := fmt.Sprintf("%s / %s / %s", tr.category, tr.productType, tr.detail)
		if tuples[it.ProductID] == nil {
			tuples[it.ProductID] = make(map[string]struct{})
			byKey[it.ProductID] = make(map[string]triple)
		}
		tuples[it.ProductID][key] = struct{}{}
		byKey[it.ProductID][key] = tr
	}

	if err := checkFunctionalDependency("product", tuples); err != nil {
		return nil, err
	}

	products := make([]Product, 0, len(tuples))
	for id, set := range byKey {
		for _, tr := range set {
			products = append(products, Product{
				ID:          id,
				Category:    tr.category,
				ProductType: tr.productType,
				Detail:      tr.detail,
			})
		}
	}
	sort.Slice(products, func(i, j int) bool { return products[i].ID < products[j].ID })
	return products, nil
}

// checkFunctionalDependency fails when any key maps to more than one
// distinct descriptive tuple. Violations are collected across all keys so
// the error reports every offender, not just the first.
func checkFunctionalDependency(dimension string, tuples map[int]map[string]struct{}) error {
	var violations []DimensionViolation
	for key, set := range tuples {
		if len(set) <= 1 {
			continue
		}
		vals := make([]string, 0, len(set))
		for v := range set {
			vals = append(vals, v)
		}
		sort.Strings(vals)
		violations = append(violations, DimensionViolation{Key: key, Tuples: vals})
	}
	if len(violations) == 0 {
		return nil
	}
	sort.Slice(violations, func(i, j int) bool {
		return violations[i].Key < violations[j].Key
	})
	return &DimensionIntegrityError{Dimension: dimension, Violations: violations}
}
