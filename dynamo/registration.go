package dynamo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/puzzlesmarathon/registration-backend/registration"
)

var _ registration.Repository = &DB{}

type registrationDynamo struct {
	PK string
	SK string

	ID               string
	Version          int
	Type             string
	Data             string
	Status           string
	SessionReference *string `dynamodbav:",omitempty"`
	CreatedAt        time.Time
}

const (
	registrationEntityName = "REGISTRATION"
)

func registrationPK(id string) string {
	return fmt.Sprintf("%s#%s", registrationEntityName, id)
}

func registrationSK(id string) string {
	return fmt.Sprintf("%s#%s", registrationEntityName, id)
}

func registrationKey(id string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"PK": &types.AttributeValueMemberS{Value: registrationPK(id)},
		"SK": &types.AttributeValueMemberS{Value: registrationSK(id)},
	}
}

func registrationToDynamo(reg registration.Registration) registrationDynamo {
	return registrationDynamo{
		PK:               registrationPK(reg.ID),
		SK:               registrationSK(reg.ID),
		ID:               reg.ID,
		Version:          reg.Version,
		Type:             string(reg.Type),
		Data:             string(reg.Data),
		Status:           reg.Status.String(),
		SessionReference: reg.SessionReference,
		CreatedAt:        reg.CreatedAt,
	}
}

func dynamoToRegistration(dynReg registrationDynamo) (registration.Registration, error) {
	status, err := registration.ParseStatus(dynReg.Status)
	if err != nil {
		return registration.Registration{}, err
	}

	return registration.Registration{
		ID:               dynReg.ID,
		Version:          dynReg.Version,
		Type:             registration.Tier(dynReg.Type),
		Data:             json.RawMessage(dynReg.Data),
		Status:           status,
		SessionReference: dynReg.SessionReference,
		CreatedAt:        dynReg.CreatedAt,
	}, nil
}

func (d *DB) CreateRegistration(ctx context.Context, reg registration.Registration) error {
	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	dynamoReg := registrationToDynamo(reg)

	regItem, err := attributevalue.MarshalMap(dynamoReg)
	if err != nil {
		return registration.NewFailedToTranslateToDBModelError("Failed to translate registration to dynamo model", err)
	}
	regExpr := exprMustBuild(expression.NewBuilder().
		WithCondition(newEntityVersionConditional(dynamoReg.Version)))

	_, err = d.dynamoClient.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:                 aws.String(d.tableName),
		Item:                      regItem,
		ConditionExpression:       regExpr.Condition(),
		ExpressionAttributeNames:  regExpr.Names(),
		ExpressionAttributeValues: regExpr.Values(),
	})
	if err != nil {
		var conditionFailedErr *types.ConditionalCheckFailedException
		if errors.As(err, &conditionFailedErr) {
			return registration.NewRegistrationAlreadyExistsError(fmt.Sprintf("Registration with ID %q already exists", reg.ID), err)
		} else if errors.Is(err, context.DeadlineExceeded) {
			return registration.NewTimeoutError("CreateRegistration timed out")
		}
		return registration.NewFailedToWriteError("Failed PutItem call", err)
	}

	return nil
}

func (d *DB) GetRegistration(ctx context.Context, id string) (registration.Registration, error) {
	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	resp, err := d.dynamoClient.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(d.tableName),
		Key:            registrationKey(id),
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return registration.Registration{}, registration.NewTimeoutError("GetRegistration timed out")
		}
		return registration.Registration{}, registration.NewFailedToFetchError(fmt.Sprintf("Failed to fetch registration with id %q", id), err)
	}

	if len(resp.Item) == 0 {
		return registration.Registration{}, registration.NewRegistrationDoesNotExistsError(fmt.Sprintf("Registration with id %q not found", id), nil)
	}

	var dynReg registrationDynamo
	err = attributevalue.UnmarshalMap(resp.Item, &dynReg)
	if err != nil {
		panic(fmt.Sprintf("failed to unmarshal registration from dynamo: %s", err))
	}

	reg, err := dynamoToRegistration(dynReg)
	if err != nil {
		return registration.Registration{}, registration.NewFailedToTranslateToDBModelError(fmt.Sprintf("Stored registration %q is invalid", id), err)
	}

	return reg, nil
}

func (d *DB) UpdateRegistrationToPaid(ctx context.Context, reg registration.Registration) error {
	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	update := expression.Set(expression.Name("Status"), expression.Value(registration.PAID.String())).
		Set(expression.Name("SessionReference"), expression.Value(aws.ToString(reg.SessionReference))).
		Set(expression.Name("Version"), expression.Value(reg.Version))

	expr := exprMustBuild(expression.NewBuilder().
		WithCondition(existingEntityVersionConditional(reg.Version)).
		WithUpdate(update))

	_, err := d.dynamoClient.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(d.tableName),
		Key:                       registrationKey(reg.ID),
		UpdateExpression:          expr.Update(),
		ConditionExpression:       expr.Condition(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
	})
	if err != nil {
		var conditionFailedErr *types.ConditionalCheckFailedException
		if errors.As(err, &conditionFailedErr) {
			return registration.NewVersionConflictError(fmt.Sprintf("Registration %q is not at version %d", reg.ID, reg.Version-1), err)
		} else if errors.Is(err, context.DeadlineExceeded) {
			return registration.NewTimeoutError("UpdateRegistrationToPaid timed out")
		}
		return registration.NewFailedToWriteError("Failed UpdateItem call", err)
	}

	return nil
}
