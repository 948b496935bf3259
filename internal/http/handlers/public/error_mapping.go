package public

import (
	"errors"

	"github.com/qbu-next/internal/constants"
	"github.com/qbu-next/internal/http/response"
	"github.com/qbu-next/internal/service"

	"github.com/gin-gonic/gin"
)

// mappedHandlerError 業務エラーからレスポンスコードへの対応付け
type mappedHandlerError struct {
	target error
	code   int
	key    string
}

// 一致した規則のキーを安定コードとして返し、業務エラーの文言は data.detail で顧客に開示する
func respondWithMappedError(c *gin.Context, err error, rules []mappedHandlerError, fallbackCode int, fallbackKey string) {
	for _, rule := range rules {
		if errors.Is(err, rule.target) {
			response.ErrorWithData(c, rule.code, rule.key, gin.H{"detail": rule.target.Error()})
			return
		}
	}
	respondError(c, fallbackCode, fallbackKey, err)
}

func concatMappedHandlerErrors(groups ...[]mappedHandlerError) []mappedHandlerError {
	total := 0
	for _, group := range groups {
		total += len(group)
	}
	result := make([]mappedHandlerError, 0, total)
	for _, group := range groups {
		result = append(result, group...)
	}
	return result
}

// 見積・確定で共通の入力エラー
var orderQuoteErrorRules = []mappedHandlerError{
	{target: service.ErrNoBlocks, code: response.CodeBadRequest, key: constants.ErrCodeNoBlocks},
	{target: service.ErrInvalidBlockKey, code: response.CodeBadRequest, key: constants.ErrCodeBadRequest},
	{target: service.ErrInvalidScaleSetting, code: response.CodeBadRequest, key: constants.ErrCodeBadRequest},
	{target: service.ErrMissingCustomerFields, code: response.CodeBadRequest, key: constants.ErrCodeMissingCustomerFields},
	{target: service.ErrInvalidPostalCode, code: response.CodeBadRequest, key: constants.ErrCodeInvalidPostalCode},
	{target: service.ErrModelNotReady, code: response.CodeBadRequest, key: constants.ErrCodeModelNotReady},
}

// チケット検証エラーはすべて安定コード invalid_ticket に揃える
// 失効や利用上限などの失敗理由は data.detail の文言で区別できる。
var ticketErrorRules = []mappedHandlerError{
	{target: service.ErrTicketInvalid, code: response.CodeBadRequest, key: constants.ErrCodeInvalidTicket},
	{target: service.ErrTicketNotFound, code: response.CodeBadRequest, key: constants.ErrCodeInvalidTicket},
	{target: service.ErrTicketTypeInvalid, code: response.CodeBadRequest, key: constants.ErrCodeInvalidTicket},
	{target: service.ErrTicketInactive, code: response.CodeBadRequest, key: constants.ErrCodeInvalidTicket},
	{target: service.ErrTicketExpired, code: response.CodeBadRequest, key: constants.ErrCodeInvalidTicket},
	{target: service.ErrTicketTotalLimit, code: response.CodeBadRequest, key: constants.ErrCodeInvalidTicket},
	{target: service.ErrTicketPerUserLimit, code: response.CodeBadRequest, key: constants.ErrCodeInvalidTicket},
	{target: service.ErrTicketUsageUnknown, code: response.CodeBadRequest, key: constants.ErrCodeInvalidTicket},
}

// 確定時のみ発生する永続化・暗号化エラー
var orderSubmitExtraErrorRules = []mappedHandlerError{
	{target: service.ErrShippingCryptoNotReady, code: response.CodeNotImplemented, key: constants.ErrCodeShippingCryptoMissing},
	{target: service.ErrShippingEncryptFailed, code: response.CodeInternal, key: constants.ErrCodeShippingEncryptFailed},
	{target: service.ErrOrderInsertFailed, code: response.CodeInternal, key: constants.ErrCodeOrderInsertFailed},
}
