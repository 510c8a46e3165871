// transfer.go
// -----------
// Multipart upload with fractional progress reporting, and streaming
// download. Both go through the full pipeline so they share auth and error
// normalization with every other call; uploads are never retried because
// the file reader cannot be rewound safely.
package watchparty

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
)

// ProgressFunc receives fractional progress in [0,1]. Progress is only
// reported while reading the request body; a nil callback disables it.
type ProgressFunc func(fraction float64)

// Upload sends file as a multipart form field named "file" along with any
// extra fields, reporting progress as loaded/total.
func (c *Client) Upload(ctx context.Context, path string, file io.Reader, filename string, fields map[string]string, onProgress ProgressFunc) ([]byte, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	for k, v := range fields {
		if err := writer.WriteField(k, v); err != nil {
			return nil, newRequestError(fmt.Errorf("failed to write form field %q: %w", k, err))
		}
	}

	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return nil, newRequestError(fmt.Errorf("failed to create form file: %w", err))
	}
	if _, err := io.Copy(part, file); err != nil {
		return nil, newRequestError(fmt.Errorf("failed to read upload source: %w", err))
	}
	if err := writer.Close(); err != nil {
		return nil, newRequestError(fmt.Errorf("failed to finalize multipart body: %w", err))
	}

	req := &Request{
		Method: http.MethodPost,
		Path:   path,
		Body:   buf.Bytes(),
		Headers: map[string]string{
			"Content-Type": writer.FormDataContentType(),
		},
	}

	if err := c.intercept(ctx, req); err != nil {
		return nil, err
	}

	resp, sendErr := c.sendWithProgress(ctx, req, onProgress)
	if sendErr != nil {
		return nil, sendErr
	}
	if resp.StatusCode >= 400 {
		return nil, newServerError(resp.StatusCode, resp.Data)
	}

	c.logger.Info("upload complete",
		"url", req.Path,
		"status", resp.StatusCode,
		"bytes", len(req.Body),
		"request_id", req.Metadata.RequestID,
	)
	return resp.Data, nil
}

// sendWithProgress is a single-attempt send that wraps the body in a
// progress-counting reader.
func (c *Client) sendWithProgress(ctx context.Context, req *Request, onProgress ProgressFunc) (*Response, *APIError) {
	target, err := c.requestURL(req.Path, req.Query)
	if err != nil {
		return nil, newRequestError(err)
	}

	body := &progressReader{
		r:          bytes.NewReader(req.Body),
		total:      int64(len(req.Body)),
		onProgress: onProgress,
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, target, body)
	if err != nil {
		return nil, newRequestError(err)
	}
	httpReq.ContentLength = int64(len(req.Body))
	for k, v := range req.Headers {
		httpReq.Header.Set(k, v)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, newNetworkError(err, isTimeout(err))
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, newNetworkError(err, isTimeout(err))
	}

	return &Response{
		StatusCode: resp.StatusCode,
		Headers:    resp.Header,
		Data:       data,
	}, nil
}

// progressReader counts bytes handed to the transport and reports
// loaded/total after every read.
type progressReader struct {
	r          io.Reader
	total      int64
	loaded     int64
	onProgress ProgressFunc
}

func (p *progressReader) Read(b []byte) (int, error) {
	n, err := p.r.Read(b)
	if n > 0 {
		p.loaded += int64(n)
		if p.onProgress != nil && p.total > 0 {
			p.onProgress(float64(p.loaded) / float64(p.total))
		}
	}
	return n, err
}

// Download fetches path as a binary payload and streams it to w. The
// response body is always drained and closed, regardless of copy outcome.
func (c *Client) Download(ctx context.Context, path string, w io.Writer) error {
	req := &Request{Method: http.MethodGet, Path: path}
	if err := c.intercept(ctx, req); err != nil {
		return err
	}

	target, err := c.requestURL(req.Path, req.Query)
	if err != nil {
		return newRequestError(err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return newRequestError(err)
	}
	for k, v := range req.Headers {
		httpReq.Header.Set(k, v)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return newNetworkError(err, isTimeout(err))
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 {
		data, _ := io.ReadAll(resp.Body)
		return newServerError(resp.StatusCode, data)
	}

	written, err := io.Copy(w, resp.Body)
	if err != nil {
		return newNetworkError(fmt.Errorf("download interrupted after %d bytes: %w", written, err), isTimeout(err))
	}

	c.logger.Info("download complete",
		"url", req.Path,
		"bytes", written,
		"request_id", req.Metadata.RequestID,
	)
	return nil
}
