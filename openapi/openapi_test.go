package openapi_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/formbind"
	"github.com/dmitrymomot/formbind/openapi"
)

const signupDoc = `
openapi: 3.0.3
info:
  title: Signup API
  version: 1.0.0
paths:
  /signup:
    post:
      operationId: createSignup
      requestBody:
        content:
          application/x-www-form-urlencoded:
            schema:
              type: object
              required: [name, interests]
              properties:
                name:
                  type: string
                email:
                  type: string
                age:
                  type: integer
                score:
                  type: number
                subscribed:
                  type: boolean
                plan:
                  type: string
                  enum: [free, pro]
                birthday:
                  type: string
                  format: date
                interests:
                  type: array
                  items:
                    type: string
                ratings:
                  type: array
                  items:
                    type: integer
      responses:
        '200':
          description: ok
  /ping:
    get:
      operationId: ping
      responses:
        '200':
          description: ok
`

func loadProvider(t *testing.T) *openapi.Provider {
	t.Helper()
	provider, err := openapi.Load(context.Background(), []byte(signupDoc))
	require.NoError(t, err)
	return provider
}

func TestOperationSchema_FieldDerivation(t *testing.T) {
	t.Parallel()

	schema, err := loadProvider(t).OperationSchema("createSignup")
	require.NoError(t, err)

	byName := make(map[string]formbind.Field, schema.Len())
	for _, f := range schema.Fields() {
		byName[f.Name] = f
	}

	assert.Equal(t, formbind.Required, byName["name"].Cardinality)
	assert.Equal(t, formbind.Optional, byName["email"].Cardinality)
	assert.Equal(t, formbind.RequiredMany, byName["interests"].Cardinality)
	assert.Equal(t, formbind.OptionalMany, byName["ratings"].Cardinality)
}

func TestBindOperation_PopulatesRecord(t *testing.T) {
	t.Parallel()

	pairs := formbind.Pairs{
		{Key: "name", Value: "Alice"},
		{Key: "age", Value: "30"},
		{Key: "score", Value: "4.5"},
		{Key: "subscribed", Value: "on"},
		{Key: "plan", Value: "pro"},
		{Key: "birthday", Value: "1994-02-01"},
		{Key: "interests", Value: "rust"},
		{Key: "interests", Value: "webdev"},
		{Key: "csrf_token", Value: "ignored"},
	}

	record, err := loadProvider(t).BindOperation("createSignup", pairs)
	require.NoError(t, err)

	assert.Equal(t, "Alice", record["name"])
	assert.Equal(t, int64(30), record["age"])
	assert.Equal(t, 4.5, record["score"])
	assert.Equal(t, true, record["subscribed"])
	assert.Equal(t, "pro", record["plan"])
	assert.Equal(t, []any{"rust", "webdev"}, record["interests"])
	assert.Equal(t, []any{}, record["ratings"], "absent optional array must be an empty sequence")
	assert.NotContains(t, record, "email", "absent optional scalar stays absent")
	assert.NotContains(t, record, "csrf_token")
}

func TestBindOperation_MissingRequired(t *testing.T) {
	t.Parallel()

	_, err := loadProvider(t).BindOperation("createSignup", formbind.Pairs{
		{Key: "interests", Value: "go"},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, formbind.ErrMissingField)

	var fieldErr *formbind.FieldError
	require.ErrorAs(t, err, &fieldErr)
	assert.Equal(t, "name", fieldErr.Field)
}

func TestBindOperation_InvalidValues(t *testing.T) {
	t.Parallel()

	provider := loadProvider(t)

	_, err := provider.BindOperation("createSignup", formbind.Pairs{
		{Key: "name", Value: "Bob"},
		{Key: "interests", Value: "go"},
		{Key: "age", Value: "thirty"},
	})
	assert.ErrorIs(t, err, formbind.ErrInvalidValue)

	_, err = provider.BindOperation("createSignup", formbind.Pairs{
		{Key: "name", Value: "Bob"},
		{Key: "interests", Value: "go"},
		{Key: "plan", Value: "enterprise"},
	})
	assert.ErrorIs(t, err, formbind.ErrInvalidValue)
}

func TestOperationSchema_Errors(t *testing.T) {
	t.Parallel()

	provider := loadProvider(t)

	_, err := provider.OperationSchema("nope")
	assert.ErrorIs(t, err, openapi.ErrOperationNotFound)

	_, err = provider.OperationSchema("ping")
	assert.ErrorIs(t, err, openapi.ErrNoFormBody)
}

func TestLoad_RejectsMalformedDocument(t *testing.T) {
	t.Parallel()

	_, err := openapi.Load(context.Background(), []byte("not: [valid"))
	assert.ErrorIs(t, err, openapi.ErrInvalidDocument)
}
