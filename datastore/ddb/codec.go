/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package ddb

import (
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/go-openapi/strfmt"

	dormerr "github.com/suparena/dorm/errors"
	sm "github.com/suparena/dorm/storagemodels"
)

// encodeRow converts row into one attribute per column.
func encodeRow(cols []sm.Column, row sm.Row) (map[string]types.AttributeValue, error) {
	item := make(map[string]types.AttributeValue, len(cols)+3)
	for i, c := range cols {
		av, err := encodeValue(row[i])
		if err != nil {
			return nil, fmt.Errorf("failed to marshal column %q: %w", c.Name, err)
		}
		item[c.Name] = av
	}
	return item, nil
}

func encodeValue(v sm.Value) (types.AttributeValue, error) {
	switch v.Kind() {
	case sm.KindNull:
		return &types.AttributeValueMemberNULL{Value: true}, nil
	case sm.KindString:
		// Empty strings stay S.
		return &types.AttributeValueMemberS{Value: v.String()}, nil
	case sm.KindDateTime:
		dt, _ := sm.As[strfmt.DateTime](v)
		return &types.AttributeValueMemberS{Value: time.Time(dt).Format(time.RFC3339Nano)}, nil
	}
	return attributevalue.Marshal(v.Interface())
}

// decodeRow reads the columns of an item back into a row.
func decodeRow(cols []sm.Column, item map[string]types.AttributeValue) (sm.Row, error) {
	row := make(sm.Row, len(cols))
	for i, c := range cols {
		av, ok := item[c.Name]
		if !ok {
			return nil, dormerr.NewColumnNotFoundError(c.Name)
		}
		v, err := decodeValue(c, av)
		if err != nil {
			return nil, err
		}
		row[i] = v
	}
	return row, nil
}

func decodeValue(col sm.Column, av types.AttributeValue) (sm.Value, error) {
	if _, isNull := av.(*types.AttributeValueMemberNULL); isNull {
		return sm.Null(), nil
	}

	var (
		v   sm.Value
		err error
	)
	switch col.Kind {
	case sm.KindInt:
		var n int
		err = attributevalue.Unmarshal(av, &n)
		v = sm.IntValue(n)
	case sm.KindInt64:
		var n int64
		err = attributevalue.Unmarshal(av, &n)
		v = sm.Int64Value(n)
	case sm.KindString:
		var s string
		err = attributevalue.Unmarshal(av, &s)
		v = sm.StringValue(s)
	case sm.KindBool:
		var b bool
		err = attributevalue.Unmarshal(av, &b)
		v = sm.BoolValue(b)
	case sm.KindFloat64:
		var f float64
		err = attributevalue.Unmarshal(av, &f)
		v = sm.Float64Value(f)
	case sm.KindDateTime:
		var s string
		if err = attributevalue.Unmarshal(av, &s); err == nil {
			var dt strfmt.DateTime
			dt, err = strfmt.ParseDateTime(s)
			v = sm.DateTimeValue(dt)
		}
	default:
		return sm.Null(), dormerr.NewUnsupportedTypeError(col.Kind)
	}
	if err != nil {
		return sm.Null(), fmt.Errorf("column %q: %w: %v", col.Name, dormerr.ErrTypeMismatch, err)
	}
	return v, nil
}
