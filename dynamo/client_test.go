package dynamo

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockTableAPI struct {
	DescribeTableFunc func(ctx context.Context, params *dynamodb.DescribeTableInput) (*dynamodb.DescribeTableOutput, error)
	CreateTableFunc   func(ctx context.Context, params *dynamodb.CreateTableInput) (*dynamodb.CreateTableOutput, error)

	describeCalls int
	createCalls   int
}

func (m *mockTableAPI) DescribeTable(ctx context.Context, params *dynamodb.DescribeTableInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DescribeTableOutput, error) {
	m.describeCalls++
	return m.DescribeTableFunc(ctx, params)
}

func (m *mockTableAPI) CreateTable(ctx context.Context, params *dynamodb.CreateTableInput, optFns ...func(*dynamodb.Options)) (*dynamodb.CreateTableOutput, error) {
	m.createCalls++
	if m.CreateTableFunc != nil {
		return m.CreateTableFunc(ctx, params)
	}
	return &dynamodb.CreateTableOutput{
		TableDescription: &types.TableDescription{TableStatus: types.TableStatusCreating},
	}, nil
}

func fastWaiter(o *dynamodb.TableExistsWaiterOptions) {
	o.MinDelay = time.Millisecond
	o.MaxDelay = 5 * time.Millisecond
}

func tableWithStatus(status types.TableStatus) *dynamodb.DescribeTableOutput {
	return &dynamodb.DescribeTableOutput{
		Table: &types.TableDescription{
			TableName:   aws.String("Registrations"),
			TableStatus: status,
		},
	}
}

func TestEnsureTable(t *testing.T) {
	ctx := context.Background()

	t.Run("existing table is left alone", func(t *testing.T) {
		client := &mockTableAPI{
			DescribeTableFunc: func(ctx context.Context, params *dynamodb.DescribeTableInput) (*dynamodb.DescribeTableOutput, error) {
				return tableWithStatus(types.TableStatusActive), nil
			},
		}

		require.NoError(t, ensureTable(ctx, client, "Registrations", time.Second, fastWaiter))
		assert.Equal(t, 0, client.createCalls)
	})

	t.Run("describe failures other than not found are returned", func(t *testing.T) {
		client := &mockTableAPI{
			DescribeTableFunc: func(ctx context.Context, params *dynamodb.DescribeTableInput) (*dynamodb.DescribeTableOutput, error) {
				return nil, errors.New("AccessDeniedException: not allowed")
			},
		}

		err := ensureTable(ctx, client, "Registrations", time.Second, fastWaiter)
		assert.ErrorContains(t, err, "AccessDeniedException")
		assert.Equal(t, 0, client.createCalls)
	})

	t.Run("missing table is created and waited on until active", func(t *testing.T) {
		statuses := []types.TableStatus{types.TableStatusCreating, types.TableStatusCreating, types.TableStatusActive}
		client := &mockTableAPI{}
		client.DescribeTableFunc = func(ctx context.Context, params *dynamodb.DescribeTableInput) (*dynamodb.DescribeTableOutput, error) {
			if client.createCalls == 0 {
				return nil, &types.ResourceNotFoundException{Message: aws.String("table not found")}
			}
			status := statuses[0]
			if len(statuses) > 1 {
				statuses = statuses[1:]
			}
			return tableWithStatus(status), nil
		}

		require.NoError(t, ensureTable(ctx, client, "Registrations", time.Second, fastWaiter))
		assert.Equal(t, 1, client.createCalls)
		// one lookup before creating, then polls until ACTIVE
		assert.Equal(t, 4, client.describeCalls)
	})

	t.Run("create failure", func(t *testing.T) {
		client := &mockTableAPI{
			DescribeTableFunc: func(ctx context.Context, params *dynamodb.DescribeTableInput) (*dynamodb.DescribeTableOutput, error) {
				return nil, &types.ResourceNotFoundException{Message: aws.String("table not found")}
			},
			CreateTableFunc: func(ctx context.Context, params *dynamodb.CreateTableInput) (*dynamodb.CreateTableOutput, error) {
				return nil, errors.New("LimitExceededException")
			},
		}

		err := ensureTable(ctx, client, "Registrations", time.Second, fastWaiter)
		assert.ErrorContains(t, err, "LimitExceededException")
	})
}
