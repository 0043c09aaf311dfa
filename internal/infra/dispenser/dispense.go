package dispenser

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/hashicorp/go-retryablehttp"
)

type (
	// fundRequest is the JSON payload of a funding call.
	fundRequest struct {
		Receiver string `json:"receiver"`
		Amount   uint64 `json:"amount"`
	}

	// fundResponse is the JSON body returned by a successful funding call.
	fundResponse struct {
		TxID   string `json:"txID"`
		Amount uint64 `json:"amount"`
	}

	// refundRequest is the JSON payload of a refund report.
	refundRequest struct {
		RefundTransactionID string `json:"refundTransactionID"`
	}

	// limitResponse is the JSON body returned by a funding limit lookup.
	limitResponse struct {
		Amount uint64 `json:"amount"`
	}

	// errorResponse is the JSON body the API attaches to rejections.
	errorResponse struct {
		Code string `json:"code"`
	}
)

// do issues one API call and decodes the response into result when given.
func (c *Client) do(ctx context.Context, method, path string, payload, result any) error {
	var rawBody []byte
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return err
		}

		rawBody = data
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, method, c.baseURL+path, rawBody)
	if err != nil {
		return err
	}

	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	res, err := c.conn.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode < http.StatusOK || res.StatusCode >= http.StatusMultipleChoices {
		var apiErr errorResponse
		if err := json.NewDecoder(res.Body).Decode(&apiErr); err == nil && apiErr.Code != "" {
			return fmt.Errorf("%w: %s", ErrFundingFailed, apiErr.Code)
		}

		return fmt.Errorf("%w: unexpected status %d", ErrFundingFailed, res.StatusCode)
	}

	if result != nil {
		return json.NewDecoder(res.Body).Decode(result)
	}

	return nil
}

// Fund requests amount microalgos for the receiver and returns the id of the
// funding transaction the dispenser submitted.
func (c *Client) Fund(ctx context.Context, receiver string, amount uint64) (string, error) {
	var resp fundResponse
	if err := c.do(ctx, http.MethodPost, fmt.Sprintf("/fund/%d", algoAssetID), fundRequest{Receiver: receiver, Amount: amount}, &resp); err != nil {
		return "", err
	}

	return resp.TxID, nil
}

// Refund reports a repayment transaction already sent to the dispenser
// address, restoring the caller's funding limit.
func (c *Client) Refund(ctx context.Context, refundTxID string) error {
	return c.do(ctx, http.MethodPost, "/refund", refundRequest{RefundTransactionID: refundTxID}, nil)
}

// Limit reports how many microalgos the authenticated user may still request.
func (c *Client) Limit(ctx context.Context) (uint64, error) {
	var resp limitResponse
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/fund/%d/limit", algoAssetID), nil, &resp); err != nil {
		return 0, err
	}

	return resp.Amount, nil
}
