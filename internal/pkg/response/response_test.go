package response

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
)

func doRequest(t *testing.T, handler fiber.Handler) (int, Response) {
	t.Helper()

	app := fiber.New()
	app.Get("/", handler)

	resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	var envelope Response
	if err := json.Unmarshal(body, &envelope); err != nil {
		t.Fatalf("unmarshal %s: %v", body, err)
	}
	return resp.StatusCode, envelope
}

func TestSuccessEnvelope(t *testing.T) {
	status, envelope := doRequest(t, func(c *fiber.Ctx) error {
		return Success(c, "ok", fiber.Map{"id": 1})
	})

	if status != fiber.StatusOK {
		t.Fatalf("status: got %d", status)
	}
	if !envelope.Success || envelope.Message != "ok" || envelope.Data == nil {
		t.Fatalf("envelope: %+v", envelope)
	}
	if envelope.Error != "" {
		t.Fatalf("success must not carry an error: %+v", envelope)
	}
}

func TestErrorEnvelopeCarriesNoData(t *testing.T) {
	status, envelope := doRequest(t, func(c *fiber.Ctx) error {
		return NotFound(c, "car not found")
	})

	if status != fiber.StatusNotFound {
		t.Fatalf("status: got %d", status)
	}
	if envelope.Success || envelope.Error != "car not found" || envelope.Data != nil {
		t.Fatalf("envelope: %+v", envelope)
	}
}

func TestTooManyRequestsStatus(t *testing.T) {
	status, envelope := doRequest(t, func(c *fiber.Ctx) error {
		return TooManyRequests(c, "slow down")
	})

	if status != fiber.StatusTooManyRequests {
		t.Fatalf("status: got %d", status)
	}
	if envelope.Success || envelope.Error != "slow down" {
		t.Fatalf("envelope: %+v", envelope)
	}
}
