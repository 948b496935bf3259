package public

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/qbu-next/internal/constants"
	"github.com/qbu-next/internal/http/response"
	"github.com/qbu-next/internal/service"

	"github.com/gin-gonic/gin"
)

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) (int, string, map[string]interface{}) {
	t.Helper()
	var body struct {
		StatusCode int                    `json:"status_code"`
		Msg        string                 `json:"msg"`
		Data       map[string]interface{} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response failed: %v (body=%s)", err, w.Body.String())
	}
	return body.StatusCode, body.Msg, body.Data
}

func respondWithOrderRules(t *testing.T, err error) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	respondWithMappedError(c, err,
		concatMappedHandlerErrors(orderQuoteErrorRules, ticketErrorRules, orderSubmitExtraErrorRules),
		response.CodeInternal, "order_create_failed")
	return w
}

func TestTicketFailuresShareCodeButKeepDistinctDetail(t *testing.T) {
	code, msg, data := decodeEnvelope(t, respondWithOrderRules(t, service.ErrTicketExpired))
	if code != response.CodeBadRequest || msg != constants.ErrCodeInvalidTicket {
		t.Fatalf("expired ticket = %d/%s, want %d/%s", code, msg, response.CodeBadRequest, constants.ErrCodeInvalidTicket)
	}
	expiredDetail, _ := data["detail"].(string)
	if expiredDetail != service.ErrTicketExpired.Error() {
		t.Fatalf("expired detail = %q, want %q", expiredDetail, service.ErrTicketExpired.Error())
	}

	code, msg, data = decodeEnvelope(t, respondWithOrderRules(t, service.ErrTicketTotalLimit))
	if code != response.CodeBadRequest || msg != constants.ErrCodeInvalidTicket {
		t.Fatalf("limit ticket = %d/%s, want %d/%s", code, msg, response.CodeBadRequest, constants.ErrCodeInvalidTicket)
	}
	limitDetail, _ := data["detail"].(string)
	if limitDetail != service.ErrTicketTotalLimit.Error() {
		t.Fatalf("limit detail = %q, want %q", limitDetail, service.ErrTicketTotalLimit.Error())
	}

	// 同じ安定コードでも顧客が失敗理由を読み分けられること
	if expiredDetail == limitDetail {
		t.Fatalf("detail should distinguish failure reasons, both = %q", expiredDetail)
	}
}

func TestShippingCryptoMissingRespondsNotImplemented(t *testing.T) {
	code, msg, _ := decodeEnvelope(t, respondWithOrderRules(t, service.ErrShippingCryptoNotReady))
	if code != response.CodeNotImplemented {
		t.Fatalf("status_code = %d, want %d", code, response.CodeNotImplemented)
	}
	if msg != constants.ErrCodeShippingCryptoMissing {
		t.Fatalf("msg = %s, want %s", msg, constants.ErrCodeShippingCryptoMissing)
	}
}

func TestMappedErrorFallback(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	respondWithMappedError(c, service.ErrOrderNotFound, ticketErrorRules,
		response.CodeInternal, "order_create_failed")

	code, msg, _ := decodeEnvelope(t, w)
	if code != response.CodeInternal || msg != "order_create_failed" {
		t.Fatalf("unmapped error = %d/%s, want 500/order_create_failed", code, msg)
	}
}
