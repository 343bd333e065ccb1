package bizstore

import (
	"context"
	"fmt"
	"sort"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	dynamodbtypes "github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/google/uuid"

	"localspot/internal/model"
)

// dynamoItem is the table shape of a listing. Owner is stored alongside
// the record; the core never sees it.
type dynamoItem struct {
	model.Business
	OwnerID string `dynamodbav:"owner_id"`
}

// DynamoStore is a DynamoDB-backed implementation of the BusinessStore
// collaborator. The table uses the listing id as its partition key; List
// scans the full table, which is fine for the directory's working set of
// a few hundred records.
type DynamoStore struct {
	client    *dynamodb.Client
	tableName string
}

// NewDynamoStore creates a DynamoDB store using the default AWS credential
// chain for the given region.
func NewDynamoStore(ctx context.Context, region, tableName string) (*DynamoStore, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("loading AWS config: %w", err)
	}
	return &DynamoStore{
		client:    dynamodb.NewFromConfig(cfg),
		tableName: tableName,
	}, nil
}

// NewDynamoStoreWithClient wraps an existing client. Useful for tests and
// local DynamoDB endpoints.
func NewDynamoStoreWithClient(client *dynamodb.Client, tableName string) *DynamoStore {
	return &DynamoStore{client: client, tableName: tableName}
}

// List scans all listings and returns them ordered by creation time,
// newest first. DynamoDB scans carry no order, so sorting happens here.
func (s *DynamoStore) List(ctx context.Context) ([]model.Business, error) {
	var out []model.Business
	var lastEvaluatedKey map[string]dynamodbtypes.AttributeValue

	for {
		input := &dynamodb.ScanInput{
			TableName:         aws.String(s.tableName),
			ExclusiveStartKey: lastEvaluatedKey,
		}

		result, err := s.client.Scan(ctx, input)
		if err != nil {
			return nil, fmt.Errorf("scanning listings table: %w", err)
		}

		for _, rawItem := range result.Items {
			var item dynamoItem
			if err := attributevalue.UnmarshalMap(rawItem, &item); err != nil {
				return nil, fmt.Errorf("unmarshaling listing: %w", err)
			}
			out = append(out, item.Business)
		}

		lastEvaluatedKey = result.LastEvaluatedKey
		if lastEvaluatedKey == nil {
			break
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

// Insert persists the record under a fresh server-assigned id and returns it.
func (s *DynamoStore) Insert(ctx context.Context, record model.Business, ownerID string) (string, error) {
	record.ID = uuid.New().String()

	item, err := attributevalue.MarshalMap(dynamoItem{Business: record, OwnerID: ownerID})
	if err != nil {
		return "", fmt.Errorf("marshaling listing: %w", err)
	}

	_, err = s.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(s.tableName),
		Item:      item,
	})
	if err != nil {
		return "", fmt.Errorf("putting listing: %w", err)
	}
	return record.ID, nil
}
