package store

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	awslambda "github.com/aws/aws-sdk-go-v2/service/lambda"

	"github.com/quentinmartel/recipe-ingest/internal/common"
	"github.com/quentinmartel/recipe-ingest/internal/entity"
)

type fakeInvoker struct {
	out    *awslambda.InvokeOutput
	err    error
	lastIn *awslambda.InvokeInput
}

func (f *fakeInvoker) Invoke(ctx context.Context, params *awslambda.InvokeInput, optFns ...func(*awslambda.Options)) (*awslambda.InvokeOutput, error) {
	f.lastIn = params
	return f.out, f.err
}

func storePayload(status int, body string) []byte {
	b, _ := json.Marshal(map[string]any{"statusCode": status, "body": body})
	return b
}

func testRecipe() entity.Recipe {
	return entity.Recipe{Title: "Ratatouille", Servings: 4, Ingredients: []entity.Ingredient{}, Steps: []entity.Step{}, Tags: []string{}}
}

func newTestClient(fake *fakeInvoker) *Client {
	return NewClient(common.DownstreamConfig{Environment: "test", FunctionName: "recipe-store-test"}, fake, nil)
}

func TestSubmit_OK(t *testing.T) {
	fake := &fakeInvoker{out: &awslambda.InvokeOutput{Payload: storePayload(201, `{"id":"r-1"}`)}}
	c := newTestClient(fake)

	out := c.Submit(context.Background(), testRecipe())
	if !out.Sent {
		t.Fatalf("sent = false: %+v", out)
	}
	if out.Status != 201 {
		t.Errorf("status = %d", out.Status)
	}

	if aws.ToString(fake.lastIn.FunctionName) != "recipe-store-test" {
		t.Errorf("function = %q", aws.ToString(fake.lastIn.FunctionName))
	}
	var req struct {
		HTTPMethod string `json:"httpMethod"`
		Path       string `json:"path"`
		Body       string `json:"body"`
	}
	if err := json.Unmarshal(fake.lastIn.Payload, &req); err != nil {
		t.Fatalf("payload: %v", err)
	}
	if req.HTTPMethod != "POST" || req.Path != "/recipes" {
		t.Errorf("request = %+v", req)
	}
	var sent entity.Recipe
	if err := json.Unmarshal([]byte(req.Body), &sent); err != nil || sent.Title != "Ratatouille" {
		t.Errorf("body = %q (%v)", req.Body, err)
	}
}

func TestSubmit_Non2xxCaptured(t *testing.T) {
	fake := &fakeInvoker{out: &awslambda.InvokeOutput{Payload: storePayload(500, "oops")}}
	c := newTestClient(fake)

	out := c.Submit(context.Background(), testRecipe())
	if out.Sent {
		t.Fatal("sent = true, want false")
	}
	if out.Status != 500 || out.Error == "" {
		t.Errorf("outcome = %+v", out)
	}
}

func TestSubmit_TransportFailureCaptured(t *testing.T) {
	c := newTestClient(&fakeInvoker{err: errors.New("connection reset")})

	out := c.Submit(context.Background(), testRecipe())
	if out.Sent || out.Error == "" {
		t.Errorf("outcome = %+v", out)
	}
}

func TestSubmit_FunctionErrorCaptured(t *testing.T) {
	fake := &fakeInvoker{out: &awslambda.InvokeOutput{FunctionError: aws.String("Unhandled")}}
	c := newTestClient(fake)

	out := c.Submit(context.Background(), testRecipe())
	if out.Sent || out.Error == "" {
		t.Errorf("outcome = %+v", out)
	}
}

func TestCheckAvailability(t *testing.T) {
	up := newTestClient(&fakeInvoker{out: &awslambda.InvokeOutput{Payload: storePayload(200, "ok")}})
	if !up.CheckAvailability(context.Background()) {
		t.Error("want available")
	}

	down := newTestClient(&fakeInvoker{err: errors.New("no such function")})
	if down.CheckAvailability(context.Background()) {
		t.Error("want unavailable")
	}

	sick := newTestClient(&fakeInvoker{out: &awslambda.InvokeOutput{Payload: storePayload(503, "")}})
	if sick.CheckAvailability(context.Background()) {
		t.Error("want unavailable on non-2xx")
	}
}
