package mystore

import (
	"context"
	"reflect"
	"sort"
	"sync"
	"time"
)

type InMemoryStore[T any] struct {
	sync.Mutex
	Items map[string]T
}

func NewInMemoryStore[T any](c context.Context) (*InMemoryStore[T], func(), error) {
	return &InMemoryStore[T]{
		Items: make(map[string]T),
	}, func() {}, nil
}

func (s *InMemoryStore[T]) RunInTransaction(c context.Context, f func(c context.Context) error) error {
	// Start transaction
	s.Lock()

	ctx := context.WithValue(c, ctxTransactionKey{}, true)

	// Within this block everything is transactional
	err := f(ctx)
	if err != nil {
		// Rollback
		s.Unlock()

		return err
	}

	// Commit
	s.Unlock()

	return nil
}

func (s *InMemoryStore[T]) Put(c context.Context, uid string, value T) error {
	nonTransactional := c.Value(ctxTransactionKey{}) == nil

	if nonTransactional {
		s.Lock()
	}

	s.Items[uid] = value

	if nonTransactional {
		s.Unlock()
	}

	return nil
}

func (s *InMemoryStore[T]) Get(c context.Context, uid string) (T, bool, error) {
	nonTransactional := c.Value(ctxTransactionKey{}) == nil

	if nonTransactional {
		s.Lock()
	}

	result, exists := s.Items[uid]

	if nonTransactional {
		s.Unlock()
	}

	return result, exists, nil
}

func (s *InMemoryStore[T]) Delete(c context.Context, uid string) error {
	nonTransactional := c.Value(ctxTransactionKey{}) == nil

	if nonTransactional {
		s.Lock()
	}

	delete(s.Items, uid)

	if nonTransactional {
		s.Unlock()
	}

	return nil
}

func (s *InMemoryStore[T]) List(c context.Context) ([]T, error) {
	nonTransactional := c.Value(ctxTransactionKey{}) == nil

	if nonTransactional {
		s.Lock()
	}

	result := make([]T, 0, len(s.Items))
	for _, v := range s.Items {
		result = append(result, v)
	}

	if nonTransactional {
		s.Unlock()
	}

	return result, nil
}

// Query filters on exported struct fields so that local behaviour matches
// the datastore implementation closely enough for uniqueness probes.
func (s *InMemoryStore[T]) Query(c context.Context, filters []Filter, orderByField string) ([]T, error) {
	items, err := s.List(c)
	if err != nil {
		return nil, err
	}

	result := make([]T, 0, len(items))
	for _, item := range items {
		if matchesAll(item, filters) {
			result = append(result, item)
		}
	}

	if orderByField != "" {
		sort.SliceStable(result, func(i, j int) bool {
			return lessByField(result[i], result[j], orderByField)
		})
	}

	return result, nil
}

func matchesAll(item any, filters []Filter) bool {
	for _, f := range filters {
		fieldValue, found := fieldByName(item, f.Field)
		if !found {
			return false
		}
		if !compare(fieldValue, f.Compare, f.Value) {
			return false
		}
	}

	return true
}

func fieldByName(item any, name string) (any, bool) {
	v := reflect.ValueOf(item)
	if v.Kind() != reflect.Struct {
		return nil, false
	}
	field := v.FieldByName(name)
	if !field.IsValid() {
		return nil, false
	}

	return field.Interface(), true
}

func compare(got any, operator string, want any) bool {
	switch operator {
	case "=":
		return reflect.DeepEqual(got, want)
	case "!=":
		return !reflect.DeepEqual(got, want)
	case "<", "<=", ">", ">=":
		gotNum, gotOk := asFloat(got)
		wantNum, wantOk := asFloat(want)
		if !gotOk || !wantOk {
			return false
		}
		switch operator {
		case "<":
			return gotNum < wantNum
		case "<=":
			return gotNum <= wantNum
		case ">":
			return gotNum > wantNum
		default:
			return gotNum >= wantNum
		}
	}

	return false
}

func asFloat(value any) (float64, bool) {
	v := reflect.ValueOf(value)
	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(v.Int()), true
	case reflect.Float32, reflect.Float64:
		return v.Float(), true
	}

	return 0, false
}

func lessByField(a, b any, field string) bool {
	av, aOk := fieldByName(a, field)
	bv, bOk := fieldByName(b, field)
	if !aOk || !bOk {
		return false
	}

	if at, ok := av.(time.Time); ok {
		if bt, ok := bv.(time.Time); ok {
			return at.Before(bt)
		}
	}
	if as, ok := av.(string); ok {
		if bs, ok := bv.(string); ok {
			return as < bs
		}
	}
	an, aOk := asFloat(av)
	bn, bOk := asFloat(bv)
	if aOk && bOk {
		return an < bn
	}

	return false
}
