/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package ddb

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	sdk "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/suparena/dorm/datastore"
	dormerr "github.com/suparena/dorm/errors"
	"github.com/suparena/dorm/registry"
	sm "github.com/suparena/dorm/storagemodels"
)

// Attribute names reserved for the single-table layout.
const (
	attrPK         = "PK"
	attrSK         = "SK"
	attrEntityType = "EntityType"
	attrSeq        = "Seq"
	seqSortKey     = "#SEQ"
)

// API is the subset of the DynamoDB client used by the engine.
type API interface {
	GetItem(ctx context.Context, params *sdk.GetItemInput, optFns ...func(*sdk.Options)) (*sdk.GetItemOutput, error)
	PutItem(ctx context.Context, params *sdk.PutItemInput, optFns ...func(*sdk.Options)) (*sdk.PutItemOutput, error)
	UpdateItem(ctx context.Context, params *sdk.UpdateItemInput, optFns ...func(*sdk.Options)) (*sdk.UpdateItemOutput, error)
	DeleteItem(ctx context.Context, params *sdk.DeleteItemInput, optFns ...func(*sdk.Options)) (*sdk.DeleteItemOutput, error)
}

// Credentials configures NewDynamoDBClient.
type Credentials struct {
	AccessKey string
	SecretKey string
	Region    string
	// Endpoint overrides the service endpoint, e.g. for DynamoDB Local.
	Endpoint string
}

type tableDef struct {
	columns    []sm.Column
	fieldTypes *registry.FieldTypes
}

// DynamodbEngine implements datastore.Engine on one DynamoDB table. Every
// logical table shares it: rows are items keyed PK="<table>#<key>",
// SK="<table>", and generated keys come from a counter item per table.
type DynamodbEngine struct {
	client    API
	tableName string
	logger    *slog.Logger

	mu     sync.RWMutex
	tables map[string]tableDef
}

var _ datastore.Engine = (*DynamodbEngine)(nil)

// NewDynamoDBClient initializes a DynamoDB client using static AWS credentials.
func NewDynamoDBClient(ctx context.Context, creds Credentials) (*sdk.Client, error) {
	opts := []func(*config.LoadOptions) error{config.WithRegion(creds.Region)}
	if creds.AccessKey != "" {
		opts = append(opts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(creds.AccessKey, creds.SecretKey, ""),
		))
	}

	cfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS configuration: %w", err)
	}

	client := sdk.NewFromConfig(cfg, func(o *sdk.Options) {
		if creds.Endpoint != "" {
			o.BaseEndpoint = aws.String(creds.Endpoint)
		}
	})
	return client, nil
}

// NewDynamodbEngine connects to DynamoDB and returns an engine on tableName.
func NewDynamodbEngine(ctx context.Context, creds Credentials, tableName string) (*DynamodbEngine, error) {
	client, err := NewDynamoDBClient(ctx, creds)
	if err != nil {
		return nil, fmt.Errorf("failed to create DynamoDB client: %w", err)
	}
	return NewEngine(client, tableName), nil
}

// NewEngine returns an engine that stores rows through client.
func NewEngine(client API, tableName string) *DynamodbEngine {
	return &DynamodbEngine{
		client:    client,
		tableName: tableName,
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
		tables:    make(map[string]tableDef),
	}
}

// WithLogger sets the logger used for item operations.
func (d *DynamodbEngine) WithLogger(logger *slog.Logger) *DynamodbEngine {
	if logger != nil {
		d.logger = logger
	}
	return d
}

// CreateTable registers the logical table. The DynamoDB table itself must
// already exist; items are schemaless so nothing is provisioned.
func (d *DynamodbEngine) CreateTable(ctx context.Context, spec datastore.TableSpec) error {
	if err := datastore.CheckSpec(spec); err != nil {
		return err
	}
	for _, c := range spec.Columns {
		switch c.Name {
		case attrPK, attrSK, attrEntityType:
			return dormerr.NewValidationError("columns", fmt.Sprintf("column name %q is reserved", c.Name))
		}
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	if _, exists := d.tables[spec.Name]; exists {
		return dormerr.NewValidationError("name", fmt.Sprintf("table %q already exists", spec.Name))
	}
	cols := make([]sm.Column, len(spec.Columns))
	copy(cols, spec.Columns)
	d.tables[spec.Name] = tableDef{columns: cols, fieldTypes: spec.FieldTypes}

	d.logger.InfoContext(ctx, "table registered", "table", spec.Name, "ddb_table", d.tableName)
	return nil
}

// DropTable forgets the logical table. Its items stay in DynamoDB.
func (d *DynamodbEngine) DropTable(ctx context.Context, table string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if _, exists := d.tables[table]; !exists {
		return dormerr.NewTableNotFoundError(table)
	}
	delete(d.tables, table)
	return nil
}

func (d *DynamodbEngine) Columns(ctx context.Context, table string) ([]sm.Column, error) {
	def, err := d.table(table)
	if err != nil {
		return nil, err
	}
	cols := make([]sm.Column, len(def.columns))
	copy(cols, def.columns)
	return cols, nil
}

// Get reads the item for key with a consistent read.
func (d *DynamodbEngine) Get(ctx context.Context, table string, key sm.Value) (sm.Row, bool, error) {
	def, k, err := d.keyed(table)
	if err != nil {
		return nil, false, err
	}
	if key.IsNull() || key.Kind() != def.columns[k].Kind {
		return nil, false, nil
	}

	out, err := d.client.GetItem(ctx, &sdk.GetItemInput{
		TableName:      &d.tableName,
		Key:            itemKey(table, key),
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return nil, false, fmt.Errorf("GetItem error: %w", err)
	}
	if out.Item == nil {
		return nil, false, nil
	}

	row, err := decodeRow(def.columns, out.Item)
	if err != nil {
		return nil, false, fmt.Errorf("table %q: %w", table, err)
	}
	return row, true, nil
}

// Upsert writes row, replacing the item with the same key. A row whose key
// is absent from the table and whose key column is generated receives the
// next value of the table counter.
func (d *DynamodbEngine) Upsert(ctx context.Context, table string, row sm.Row) (sm.Row, error) {
	def, k, err := d.keyed(table)
	if err != nil {
		return nil, err
	}
	if err := datastore.CheckRow(def.columns, row); err != nil {
		return nil, fmt.Errorf("table %q: %w", table, err)
	}
	keyCol := def.columns[k]
	if row[k].IsNull() && !keyCol.Generated {
		return nil, dormerr.NewValidationError(keyCol.Name, fmt.Sprintf("key of table %q must be set", table))
	}

	stored := row.Clone()
	exists := false
	if !row[k].IsNull() {
		exists, err = d.exists(ctx, table, row[k])
		if err != nil {
			return nil, err
		}
	}

	var condition *string
	if !exists && keyCol.Generated {
		id, err := d.nextID(ctx, table, keyCol)
		if err != nil {
			return nil, err
		}
		stored[k] = id
		condition = aws.String("attribute_not_exists(PK)")
	}

	item, err := encodeRow(def.columns, stored)
	if err != nil {
		return nil, fmt.Errorf("table %q: %w", table, err)
	}
	for name, av := range itemKey(table, stored[k]) {
		item[name] = av
	}
	item[attrEntityType] = &types.AttributeValueMemberS{Value: table}

	_, err = d.client.PutItem(ctx, &sdk.PutItemInput{
		TableName:           &d.tableName,
		Item:                item,
		ConditionExpression: condition,
	})
	if err != nil {
		return nil, fmt.Errorf("PutItem failed: %w", err)
	}

	d.logger.DebugContext(ctx, "row stored", "table", table, "key", stored[k].String(), "replaced", exists)
	return stored.Clone(), nil
}

// Delete removes the item for key.
func (d *DynamodbEngine) Delete(ctx context.Context, table string, key sm.Value) error {
	def, k, err := d.keyed(table)
	if err != nil {
		return err
	}
	if key.IsNull() || key.Kind() != def.columns[k].Kind {
		return dormerr.NewNotFoundError(table, key.String())
	}

	_, err = d.client.DeleteItem(ctx, &sdk.DeleteItemInput{
		TableName:           &d.tableName,
		Key:                 itemKey(table, key),
		ConditionExpression: aws.String("attribute_exists(PK)"),
	})
	if err != nil {
		var cfe *types.ConditionalCheckFailedException
		if errors.As(err, &cfe) {
			return dormerr.NewNotFoundError(table, key.String())
		}
		return fmt.Errorf("failed to delete item in DynamoDB: %w", err)
	}
	return nil
}

func (d *DynamodbEngine) table(name string) (tableDef, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	def, ok := d.tables[name]
	if !ok {
		return tableDef{}, dormerr.NewTableNotFoundError(name)
	}
	return def, nil
}

// keyed resolves a table with exactly one key column of a registered kind.
func (d *DynamodbEngine) keyed(name string) (tableDef, int, error) {
	def, err := d.table(name)
	if err != nil {
		return tableDef{}, -1, err
	}
	k, err := datastore.SingleKey(name, def.columns)
	if err != nil {
		return tableDef{}, -1, err
	}
	if _, err := def.fieldTypes.Comparator(def.columns[k].Kind); err != nil {
		return tableDef{}, -1, fmt.Errorf("table %q column %q: %w", name, def.columns[k].Name, err)
	}
	return def, k, nil
}

func (d *DynamodbEngine) exists(ctx context.Context, table string, key sm.Value) (bool, error) {
	out, err := d.client.GetItem(ctx, &sdk.GetItemInput{
		TableName:            &d.tableName,
		Key:                  itemKey(table, key),
		ConsistentRead:       aws.Bool(true),
		ProjectionExpression: aws.String(attrPK),
	})
	if err != nil {
		return false, fmt.Errorf("GetItem error: %w", err)
	}
	return out.Item != nil, nil
}

// nextID atomically increments the counter item of table.
func (d *DynamodbEngine) nextID(ctx context.Context, table string, col sm.Column) (sm.Value, error) {
	out, err := d.client.UpdateItem(ctx, &sdk.UpdateItemInput{
		TableName: &d.tableName,
		Key: map[string]types.AttributeValue{
			attrPK: &types.AttributeValueMemberS{Value: "SEQ#" + table},
			attrSK: &types.AttributeValueMemberS{Value: seqSortKey},
		},
		UpdateExpression:          aws.String("ADD #seq :one"),
		ExpressionAttributeNames:  map[string]string{"#seq": attrSeq},
		ExpressionAttributeValues: map[string]types.AttributeValue{":one": &types.AttributeValueMemberN{Value: "1"}},
		ReturnValues:              types.ReturnValueUpdatedNew,
	})
	if err != nil {
		return sm.Null(), fmt.Errorf("failed to allocate id for table %q: %w", table, err)
	}

	var n int64
	if err := attributevalue.Unmarshal(out.Attributes[attrSeq], &n); err != nil {
		return sm.Null(), fmt.Errorf("failed to unmarshal counter for table %q: %w", table, err)
	}
	id, ok := sm.WithInt(col.Kind, n)
	if !ok {
		return sm.Null(), dormerr.NewValidationError(col.Name, fmt.Sprintf("generated column must be int or int64, not %s", col.Kind))
	}
	return id, nil
}

func itemKey(table string, key sm.Value) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		attrPK: &types.AttributeValueMemberS{Value: table + "#" + key.String()},
		attrSK: &types.AttributeValueMemberS{Value: table},
	}
}
