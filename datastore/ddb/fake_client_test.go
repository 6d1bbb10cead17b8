/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package ddb

import (
	"context"
	"fmt"
	"strconv"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	sdk "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// fakeClient keeps items in memory and understands the handful of
// expressions the engine issues.
type fakeClient struct {
	mu    sync.Mutex
	items map[string]map[string]types.AttributeValue
	puts  int
	err   error
}

func newFakeClient() *fakeClient {
	return &fakeClient{items: make(map[string]map[string]types.AttributeValue)}
}

func fakeKey(key map[string]types.AttributeValue) string {
	pk := key["PK"].(*types.AttributeValueMemberS).Value
	sk := key["SK"].(*types.AttributeValueMemberS).Value
	return pk + "|" + sk
}

func (f *fakeClient) GetItem(ctx context.Context, in *sdk.GetItemInput, _ ...func(*sdk.Options)) (*sdk.GetItemOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	item, ok := f.items[fakeKey(in.Key)]
	if !ok {
		return &sdk.GetItemOutput{}, nil
	}
	out := make(map[string]types.AttributeValue, len(item))
	for k, v := range item {
		out[k] = v
	}
	return &sdk.GetItemOutput{Item: out}, nil
}

func (f *fakeClient) PutItem(ctx context.Context, in *sdk.PutItemInput, _ ...func(*sdk.Options)) (*sdk.PutItemOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	key := fakeKey(in.Item)
	if aws.ToString(in.ConditionExpression) == "attribute_not_exists(PK)" {
		if _, exists := f.items[key]; exists {
			return nil, &types.ConditionalCheckFailedException{Message: aws.String("item exists")}
		}
	}
	f.items[key] = in.Item
	f.puts++
	return &sdk.PutItemOutput{}, nil
}

func (f *fakeClient) UpdateItem(ctx context.Context, in *sdk.UpdateItemInput, _ ...func(*sdk.Options)) (*sdk.UpdateItemOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	if aws.ToString(in.UpdateExpression) != "ADD #seq :one" {
		return nil, fmt.Errorf("fake: unsupported update expression %q", aws.ToString(in.UpdateExpression))
	}
	attr := in.ExpressionAttributeNames["#seq"]
	key := fakeKey(in.Key)
	item, ok := f.items[key]
	if !ok {
		item = map[string]types.AttributeValue{"PK": in.Key["PK"], "SK": in.Key["SK"]}
		f.items[key] = item
	}
	var n int64
	if cur, ok := item[attr].(*types.AttributeValueMemberN); ok {
		n, _ = strconv.ParseInt(cur.Value, 10, 64)
	}
	n++
	item[attr] = &types.AttributeValueMemberN{Value: strconv.FormatInt(n, 10)}
	return &sdk.UpdateItemOutput{Attributes: map[string]types.AttributeValue{attr: item[attr]}}, nil
}

func (f *fakeClient) DeleteItem(ctx context.Context, in *sdk.DeleteItemInput, _ ...func(*sdk.Options)) (*sdk.DeleteItemOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	key := fakeKey(in.Key)
	if _, exists := f.items[key]; !exists {
		if aws.ToString(in.ConditionExpression) == "attribute_exists(PK)" {
			return nil, &types.ConditionalCheckFailedException{Message: aws.String("no item")}
		}
		return &sdk.DeleteItemOutput{}, nil
	}
	delete(f.items, key)
	return &sdk.DeleteItemOutput{}, nil
}
