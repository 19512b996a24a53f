package dynamo

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/google/uuid"

	"github.com/jacentio/stratum/schema"
)

const (
	// metaSK is the sort key of the per-table meta item.
	metaSK = "#meta"

	// rowPrefix prefixes the sort key of every row item.
	rowPrefix = "#row#"

	// batchMax is the DynamoDB BatchWriteItem limit.
	batchMax = 25
)

// Provider implements schema.Provider on DynamoDB.
type Provider struct {
	client *dynamodb.Client
	config Config
}

var _ schema.Provider = (*Provider)(nil)

// New creates a provider using the given client.
func New(client *dynamodb.Client, config Config) *Provider {
	config.validate()
	return &Provider{client: client, config: config}
}

// physical maps a table reference to the DynamoDB table holding its
// schema's partitions.
func (p *Provider) physical(table schema.TableRef) string {
	return p.config.TablePrefix + table.Schema
}

// Register writes the meta item that makes a table known to the
// provider: its definition text and primary key attribute order.
// Called by the registration step, once per table; re-registration
// overwrites the previous meta item.
func (p *Provider) Register(ctx context.Context, table schema.TableRef, definition string, primaryKey []string) error {
	pkAttr, err := attributevalue.MarshalList(primaryKey)
	if err != nil {
		return fmt.Errorf("marshal primary key: %w", err)
	}
	_, err = p.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(p.physical(table)),
		Item: map[string]types.AttributeValue{
			"entity":      &types.AttributeValueMemberS{Value: table.Name},
			"sk":          &types.AttributeValueMemberS{Value: metaSK},
			"definition":  &types.AttributeValueMemberS{Value: definition},
			"primary_key": &types.AttributeValueMemberL{Value: pkAttr},
		},
	})
	return err
}

// meta fetches a table's meta item, or ErrTableMissing.
func (p *Provider) meta(ctx context.Context, table schema.TableRef) (map[string]types.AttributeValue, error) {
	result, err := p.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(p.physical(table)),
		Key: map[string]types.AttributeValue{
			"entity": &types.AttributeValueMemberS{Value: table.Name},
			"sk":     &types.AttributeValueMemberS{Value: metaSK},
		},
	})
	if err != nil {
		return nil, err
	}
	if result.Item == nil {
		return nil, fmt.Errorf("%w: %s", ErrTableMissing, table)
	}
	return result.Item, nil
}

// Describe returns the table's registered definition text.
func (p *Provider) Describe(ctx context.Context, table schema.TableRef) (string, error) {
	item, err := p.meta(ctx, table)
	if err != nil {
		return "", err
	}
	if v, ok := item["definition"].(*types.AttributeValueMemberS); ok {
		return v.Value, nil
	}
	return "", nil
}

// PrimaryKey returns the table's primary key attribute names in order.
func (p *Provider) PrimaryKey(ctx context.Context, table schema.TableRef) ([]string, error) {
	item, err := p.meta(ctx, table)
	if err != nil {
		return nil, err
	}
	var pk []string
	if v, ok := item["primary_key"].(*types.AttributeValueMemberL); ok {
		if err := attributevalue.UnmarshalList(v.Value, &pk); err != nil {
			return nil, fmt.Errorf("unmarshal primary key: %w", err)
		}
	}
	return pk, nil
}

// rowSK builds the sort key of a row from its primary key values.
func rowSK(primaryKey []string, row schema.Row) (string, error) {
	sk := rowPrefix
	for i, attr := range primaryKey {
		v, ok := row[attr]
		if !ok {
			return "", fmt.Errorf("%w: %s", ErrMissingKey, attr)
		}
		if i > 0 {
			sk += "#"
		}
		sk += fmt.Sprintf("%v", v)
	}
	return sk, nil
}

// condFilter builds a DynamoDB filter expression from an attribute
// equality condition. Attributes are iterated in sorted order so the
// expression is deterministic.
func condFilter(cond schema.Cond) (string, map[string]string, map[string]types.AttributeValue, error) {
	if len(cond) == 0 {
		return "", nil, nil, nil
	}
	attrs := make([]string, 0, len(cond))
	for k := range cond {
		attrs = append(attrs, k)
	}
	sort.Strings(attrs)

	var clauses []string
	names := make(map[string]string, len(cond))
	values := make(map[string]types.AttributeValue, len(cond))
	for i, attr := range attrs {
		av, err := attributevalue.Marshal(cond[attr])
		if err != nil {
			return "", nil, nil, fmt.Errorf("marshal condition %s: %w", attr, err)
		}
		nameKey := fmt.Sprintf("#attr%d", i)
		valueKey := fmt.Sprintf(":val%d", i)
		names[nameKey] = attr
		values[valueKey] = av
		clauses = append(clauses, fmt.Sprintf("%s = %s", nameKey, valueKey))
	}
	return strings.Join(clauses, " AND "), names, values, nil
}

// rowQuery assembles the query for a table's row partition, with an
// optional condition filter.
func (p *Provider) rowQuery(table schema.TableRef, cond schema.Cond) (*dynamodb.QueryInput, error) {
	input := &dynamodb.QueryInput{
		TableName:              aws.String(p.physical(table)),
		KeyConditionExpression: aws.String("#entity = :entity AND begins_with(#sk, :rows)"),
		ExpressionAttributeNames: map[string]string{
			"#entity": "entity",
			"#sk":     "sk",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":entity": &types.AttributeValueMemberS{Value: table.Name},
			":rows":   &types.AttributeValueMemberS{Value: rowPrefix},
		},
	}

	filter, names, values, err := condFilter(cond)
	if err != nil {
		return nil, err
	}
	if filter != "" {
		input.FilterExpression = aws.String(filter)
		for k, v := range names {
			input.ExpressionAttributeNames[k] = v
		}
		for k, v := range values {
			input.ExpressionAttributeValues[k] = v
		}
	}
	return input, nil
}

// Fetch returns the rows matching cond; a nil cond matches all.
func (p *Provider) Fetch(ctx context.Context, table schema.TableRef, cond schema.Cond) ([]schema.Row, error) {
	input, err := p.rowQuery(table, cond)
	if err != nil {
		return nil, err
	}

	var rows []schema.Row
	paginator := dynamodb.NewQueryPaginator(p.client, input)
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		for _, raw := range page.Items {
			row := schema.Row{}
			if err := attributevalue.UnmarshalMap(raw, &row); err != nil {
				return nil, fmt.Errorf("unmarshal row: %w", err)
			}
			delete(row, "entity")
			delete(row, "sk")
			rows = append(rows, row)
		}
	}
	return rows, nil
}

// Count returns the number of rows matching cond.
func (p *Provider) Count(ctx context.Context, table schema.TableRef, cond schema.Cond) (int, error) {
	input, err := p.rowQuery(table, cond)
	if err != nil {
		return 0, err
	}
	input.Select = types.SelectCount

	total := 0
	paginator := dynamodb.NewQueryPaginator(p.client, input)
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return 0, err
		}
		total += int(page.Count)
	}
	return total, nil
}

// Insert writes rows transactionally, refusing duplicate primary
// keys. The whole batch is applied or none of it.
func (p *Provider) Insert(ctx context.Context, table schema.TableRef, rows []schema.Row) error {
	if len(rows) == 0 {
		return nil
	}
	primaryKey, err := p.PrimaryKey(ctx, table)
	if err != nil {
		return err
	}

	items := make([]types.TransactWriteItem, 0, len(rows))
	for _, row := range rows {
		sk, err := rowSK(primaryKey, row)
		if err != nil {
			return err
		}
		item, err := attributevalue.MarshalMap(map[string]any(row))
		if err != nil {
			return fmt.Errorf("marshal row: %w", err)
		}
		item["entity"] = &types.AttributeValueMemberS{Value: table.Name}
		item["sk"] = &types.AttributeValueMemberS{Value: sk}

		items = append(items, types.TransactWriteItem{
			Put: &types.Put{
				TableName:           aws.String(p.physical(table)),
				Item:                item,
				ConditionExpression: aws.String("attribute_not_exists(sk)"),
			},
		})
	}

	_, err = p.client.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{
		TransactItems:      items,
		ClientRequestToken: aws.String(uuid.NewString()),
	})
	return p.mapInsertError(err)
}

// Delete removes the rows matching cond and returns how many were
// removed.
func (p *Provider) Delete(ctx context.Context, table schema.TableRef, cond schema.Cond) (int, error) {
	keys, err := p.rowKeys(ctx, table, cond, true)
	if err != nil {
		return 0, err
	}
	if err := p.batchDelete(ctx, table, keys); err != nil {
		return 0, err
	}
	return len(keys), nil
}

// Drop removes the table: every row item and the meta item.
func (p *Provider) Drop(ctx context.Context, table schema.TableRef) error {
	keys, err := p.rowKeys(ctx, table, nil, false)
	if err != nil {
		return err
	}
	return p.batchDelete(ctx, table, keys)
}

// rowKeys collects the sort keys of a table's items. With rowsOnly the
// meta item is excluded.
func (p *Provider) rowKeys(ctx context.Context, table schema.TableRef, cond schema.Cond, rowsOnly bool) ([]string, error) {
	input, err := p.rowQuery(table, cond)
	if err != nil {
		return nil, err
	}
	if !rowsOnly {
		input.KeyConditionExpression = aws.String("#entity = :entity")
		delete(input.ExpressionAttributeValues, ":rows")
	}
	input.ProjectionExpression = aws.String("#sk")

	var keys []string
	paginator := dynamodb.NewQueryPaginator(p.client, input)
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		for _, item := range page.Items {
			if v, ok := item["sk"].(*types.AttributeValueMemberS); ok {
				keys = append(keys, v.Value)
			}
		}
	}
	return keys, nil
}

// batchDelete removes items by sort key in BatchWriteItem chunks,
// retrying unprocessed keys until none remain.
func (p *Provider) batchDelete(ctx context.Context, table schema.TableRef, keys []string) error {
	physical := p.physical(table)
	for start := 0; start < len(keys); start += batchMax {
		end := start + batchMax
		if end > len(keys) {
			end = len(keys)
		}

		writes := make([]types.WriteRequest, 0, end-start)
		for _, sk := range keys[start:end] {
			writes = append(writes, types.WriteRequest{
				DeleteRequest: &types.DeleteRequest{
					Key: map[string]types.AttributeValue{
						"entity": &types.AttributeValueMemberS{Value: table.Name},
						"sk":     &types.AttributeValueMemberS{Value: sk},
					},
				},
			})
		}

		pending := map[string][]types.WriteRequest{physical: writes}
		for len(pending[physical]) > 0 {
			out, err := p.client.BatchWriteItem(ctx, &dynamodb.BatchWriteItemInput{
				RequestItems: pending,
			})
			if err != nil {
				return err
			}
			pending = out.UnprocessedItems
		}
	}
	return nil
}

// mapInsertError maps a transaction cancellation on the duplicate
// condition to ErrDuplicate.
func (p *Provider) mapInsertError(err error) error {
	if err == nil {
		return nil
	}
	var txErr *types.TransactionCanceledException
	if errors.As(err, &txErr) {
		for _, reason := range txErr.CancellationReasons {
			if reason.Code != nil && *reason.Code == "ConditionalCheckFailed" {
				return ErrDuplicate
			}
		}
	}
	return err
}
