package payment

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"strings"

	"websewa_backend/internal/dto"
)

// StatusComplete is the gateway's settlement sentinel; anything else in the
// payload status field means the payment did not finish.
const StatusComplete = "COMPLETE"

// GatewayCode identifies the eSewa row in the payment_gateways table.
const GatewayCode = "esewa"

// EsewaService implements the gateway's signature scheme: HMAC-SHA256 over
// a comma-joined "name=value" message whose fields and order come from the
// payload's own signed_field_names list.
type EsewaService struct{}

func NewEsewaService() *EsewaService {
	return &EsewaService{}
}

// DecodeCallback decodes the base64 `data` field into the payment record.
func (s *EsewaService) DecodeCallback(data string) (*dto.EsewaPaymentData, error) {
	raw, err := base64.StdEncoding.DecodeString(data)
	if err != nil {
		return nil, err
	}

	var payload dto.EsewaPaymentData
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// SignedMessage rebuilds the canonical message from the fields the payload
// itself lists, in that exact order. The field order is part of the signed
// material; assuming a fixed order breaks verification the day the gateway
// reorders its list.
func (s *EsewaService) SignedMessage(payload *dto.EsewaPaymentData) string {
	names := strings.Split(payload.SignedFieldNames, ",")
	pairs := make([]string, 0, len(names))
	for _, name := range names {
		name = strings.TrimSpace(name)
		pairs = append(pairs, name+"="+payload.FieldValue(name))
	}
	return strings.Join(pairs, ",")
}

// GenerateSignature computes the base64-encoded HMAC-SHA256 digest.
func (s *EsewaService) GenerateSignature(message, secretKey string) string {
	mac := hmac.New(sha256.New, []byte(secretKey))
	mac.Write([]byte(message))
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

// VerifySignature checks the payload signature against a recomputed digest.
// Constant-time comparison; any mismatch fails closed.
func (s *EsewaService) VerifySignature(payload *dto.EsewaPaymentData, secretKey string) bool {
	expected := s.GenerateSignature(s.SignedMessage(payload), secretKey)
	return hmac.Equal([]byte(expected), []byte(payload.Signature))
}
