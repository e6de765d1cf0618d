package dynamo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"go.opentelemetry.io/contrib/instrumentation/github.com/aws/aws-sdk-go-v2/otelaws"
)

// NewClient builds a traced DynamoDB client. A non-empty endpoint points it at
// a DynamoDB Local instance instead of AWS.
func NewClient(cfg aws.Config, endpoint string) *dynamodb.Client {
	otelaws.AppendMiddlewares(&cfg.APIOptions)

	return dynamodb.NewFromConfig(cfg, func(o *dynamodb.Options) {
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
		}
	})
}

// tableCreateTimeout bounds how long EnsureTable waits for a new table to turn ACTIVE.
const tableCreateTimeout = 2 * time.Minute

type tableAPI interface {
	dynamodb.DescribeTableAPIClient
	CreateTable(ctx context.Context, params *dynamodb.CreateTableInput, optFns ...func(*dynamodb.Options)) (*dynamodb.CreateTableOutput, error)
}

// EnsureTable creates the single-table layout used by DB when it is missing
// and blocks until the table accepts reads and writes.
func EnsureTable(ctx context.Context, client *dynamodb.Client, tableName string) error {
	return ensureTable(ctx, client, tableName, tableCreateTimeout)
}

func ensureTable(ctx context.Context, client tableAPI, tableName string, maxWait time.Duration, waiterOpts ...func(*dynamodb.TableExistsWaiterOptions)) error {
	_, err := client.DescribeTable(ctx, &dynamodb.DescribeTableInput{
		TableName: aws.String(tableName),
	})
	if err == nil {
		return nil
	}

	var notFound *types.ResourceNotFoundException
	if !errors.As(err, &notFound) {
		return fmt.Errorf("failed to describe table %q: %w", tableName, err)
	}

	_, err = client.CreateTable(ctx, createTableInput(tableName))
	if err != nil {
		return fmt.Errorf("failed to create table: %w", err)
	}

	err = dynamodb.NewTableExistsWaiter(client, waiterOpts...).Wait(ctx, &dynamodb.DescribeTableInput{
		TableName: aws.String(tableName),
	}, maxWait)
	if err != nil {
		return fmt.Errorf("table %q did not become active: %w", tableName, err)
	}

	return nil
}

func createTableInput(tableName string) *dynamodb.CreateTableInput {
	return &dynamodb.CreateTableInput{
		TableName:   aws.String(tableName),
		BillingMode: types.BillingModePayPerRequest,
		AttributeDefinitions: []types.AttributeDefinition{
			{
				AttributeName: aws.String("PK"),
				AttributeType: types.ScalarAttributeTypeS,
			},
			{
				AttributeName: aws.String("SK"),
				AttributeType: types.ScalarAttributeTypeS,
			},
		},
		KeySchema: []types.KeySchemaElement{
			{
				AttributeName: aws.String("PK"),
				KeyType:       types.KeyTypeHash,
			},
			{
				AttributeName: aws.String("SK"),
				KeyType:       types.KeyTypeRange,
			},
		},
	}
}
