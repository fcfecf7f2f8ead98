package middleware

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

type createItemRequest struct {
	Name     string `json:"name" validate:"required"`
	Quantity int    `json:"quantity" validate:"required,gt=0"`
}

func TestDecodeAndValidateRequiredFields(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("requests missing required fields are rejected", prop.ForAll(
		func(includeName bool, quantity int) bool {
			payload := map[string]interface{}{"quantity": quantity}
			if includeName {
				payload["name"] = "205/55R16 winter"
			}
			body, _ := json.Marshal(payload)
			req := httptest.NewRequest("POST", "/api/products", bytes.NewReader(body))
			req.Header.Set("Content-Type", "application/json")

			var decoded createItemRequest
			err := DecodeAndValidate(req, &decoded)

			valid := includeName && quantity > 0
			return (err == nil) == valid
		},
		gen.Bool(),
		gen.IntRange(-5, 5),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

func TestDecodeAndValidateRejectsMalformedJSON(t *testing.T) {
	req := httptest.NewRequest("POST", "/api/products", bytes.NewReader([]byte(`{"name": `)))
	req.Header.Set("Content-Type", "application/json")

	var decoded createItemRequest
	if err := DecodeAndValidate(req, &decoded); err == nil {
		t.Fatal("expected error for malformed JSON")
	}
}

func TestFormatValidationErrorsNamesEachField(t *testing.T) {
	err := ValidateRequest(&createItemRequest{})
	if err == nil {
		t.Fatal("expected validation error")
	}

	formatted := FormatValidationErrors(err)
	if len(formatted) != 2 {
		t.Fatalf("expected 2 field errors, got %d", len(formatted))
	}
	fields := map[string]bool{}
	for _, fe := range formatted {
		if fe.Message == "" {
			t.Errorf("field %s has empty message", fe.Field)
		}
		fields[fe.Field] = true
	}
	if !fields["Name"] || !fields["Quantity"] {
		t.Errorf("expected errors for Name and Quantity, got %v", fields)
	}
}
