package todos

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/dmitrijs2005/todokeeper/internal/common"
	"github.com/dmitrijs2005/todokeeper/internal/server/models"
)

// DynamoAPI is the part of *dynamodb.Client used by DynamoRepository.
type DynamoAPI interface {
	dynamodb.QueryAPIClient
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	UpdateItem(ctx context.Context, params *dynamodb.UpdateItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error)
	DeleteItem(ctx context.Context, params *dynamodb.DeleteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error)
}

// "name" is a DynamoDB reserved word, hence the #todoName alias.
const (
	projection     = "todoId, createdAt, #todoName, dueDate, done, imageUrl"
	itemExists     = "attribute_exists(todoId)"
	updateFields   = "set #todoName = :todoName, dueDate = :dueDate, done = :done"
	updateImageURL = "set imageUrl = :imageUrl"
)

// DynamoRepository keeps todos in a table keyed by (userId, todoId) with a
// local secondary index sorted by createdAt.
type DynamoRepository struct {
	client DynamoAPI
	table  string
	index  string
}

func NewDynamoRepository(client DynamoAPI, table, index string) *DynamoRepository {
	return &DynamoRepository{client: client, table: table, index: index}
}

func (r *DynamoRepository) key(userID, todoID string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"userId": &types.AttributeValueMemberS{Value: userID},
		"todoId": &types.AttributeValueMemberS{Value: todoID},
	}
}

// GetAllTodos queries the createdAt index newest first, following
// pagination until the result set is exhausted.
func (r *DynamoRepository) GetAllTodos(ctx context.Context, userID string) ([]*models.TodoItem, error) {
	p := dynamodb.NewQueryPaginator(r.client, &dynamodb.QueryInput{
		TableName:              aws.String(r.table),
		IndexName:              aws.String(r.index),
		KeyConditionExpression: aws.String("userId = :userId"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":userId": &types.AttributeValueMemberS{Value: userID},
		},
		ProjectionExpression:     aws.String(projection),
		ExpressionAttributeNames: map[string]string{"#todoName": "name"},
		ScanIndexForward:         aws.Bool(false),
	})

	result := make([]*models.TodoItem, 0)
	for p.HasMorePages() {
		page, err := p.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to query todos: %w", err)
		}

		var items []*models.TodoItem
		if err := attributevalue.UnmarshalListOfMaps(page.Items, &items); err != nil {
			return nil, fmt.Errorf("failed to unmarshal todos: %w", err)
		}
		result = append(result, items...)
	}

	return result, nil
}

func (r *DynamoRepository) CreateTodo(ctx context.Context, item *models.TodoItem) (*models.TodoItem, error) {
	av, err := attributevalue.MarshalMap(item)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal todo: %w", err)
	}

	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.table),
		Item:      av,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to put todo: %w", err)
	}

	return item, nil
}

func (r *DynamoRepository) DeleteTodo(ctx context.Context, todoID, userID string) error {
	_, err := r.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(r.table),
		Key:       r.key(userID, todoID),
	})
	if err != nil {
		return fmt.Errorf("failed to delete todo: %w", err)
	}
	return nil
}

func (r *DynamoRepository) UpdateTodo(ctx context.Context, req *models.UpdateTodoRequest, userID, todoID string) error {
	_, err := r.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:           aws.String(r.table),
		Key:                 r.key(userID, todoID),
		UpdateExpression:    aws.String(updateFields),
		ConditionExpression: aws.String(itemExists),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":todoName": &types.AttributeValueMemberS{Value: req.Name},
			":dueDate":  &types.AttributeValueMemberS{Value: req.DueDate},
			":done":     &types.AttributeValueMemberBOOL{Value: req.Done},
		},
		ExpressionAttributeNames: map[string]string{"#todoName": "name"},
	})
	return updateError(err, todoID)
}

func (r *DynamoRepository) AddImageToTodo(ctx context.Context, imageURL, todoID, userID string) error {
	_, err := r.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:           aws.String(r.table),
		Key:                 r.key(userID, todoID),
		UpdateExpression:    aws.String(updateImageURL),
		ConditionExpression: aws.String(itemExists),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":imageUrl": &types.AttributeValueMemberS{Value: imageURL},
		},
	})
	return updateError(err, todoID)
}

func updateError(err error, todoID string) error {
	if err == nil {
		return nil
	}
	var ccf *types.ConditionalCheckFailedException
	if errors.As(err, &ccf) {
		return fmt.Errorf("todo %s: %w", todoID, common.ErrorNotFound)
	}
	return fmt.Errorf("failed to update todo: %w", err)
}
