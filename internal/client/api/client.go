// Package api implements the REST contract of the Perfect Match backend:
// profile CRUD with multipart uploads plus admin login. All calls take a
// context; cancellation is reported as context.Canceled, never as a UI error.
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"perfectmatch/internal/client/models"
	"perfectmatch/internal/common"
	"perfectmatch/internal/logging"
)

// ProgressFunc receives upload progress. total is 0 when unknown, in which
// case the indicator should render as indeterminate.
type ProgressFunc func(loaded, total int64)

// Client is the REST client for the backend. Safe for concurrent use.
type Client struct {
	http *resty.Client
	log  logging.Logger
}

// New builds a Client against baseURL (the ".../api" root). The device id is
// attached to every request for server-side correlation. Requests are never
// retried automatically; retrying is always an explicit user action.
func New(baseURL string, timeout time.Duration, deviceID string, log logging.Logger) *Client {
	c := resty.New().
		SetBaseURL(strings.TrimRight(baseURL, "/")).
		SetTimeout(timeout).
		SetHeader("Accept", "application/json")
	if deviceID != "" {
		c.SetHeader(common.DeviceIDHeaderName, deviceID)
	}
	return &Client{http: c, log: log}
}

// GetProfile fetches one profile by id. A 404 unwraps to common.ErrNotFound.
func (c *Client) GetProfile(ctx context.Context, id string) (*models.Profile, error) {
	resp, err := c.http.R().SetContext(ctx).Get("/users/" + id)
	if err != nil {
		return nil, classifyTransportErr(err)
	}
	if resp.IsError() {
		return nil, statusError(resp.StatusCode(), resp.Body())
	}

	var p models.Profile
	if err := json.Unmarshal(resp.Body(), &p); err != nil {
		return nil, fmt.Errorf("decode profile %s: %w", id, err)
	}
	if p.ID == "" {
		p.ID = id
	}
	return &p, nil
}

// ListProfiles fetches every profile the backend knows. An empty array is a
// valid, empty result.
func (c *Client) ListProfiles(ctx context.Context) ([]models.Profile, error) {
	resp, err := c.http.R().SetContext(ctx).Get("/users")
	if err != nil {
		return nil, classifyTransportErr(err)
	}
	if resp.IsError() {
		return nil, statusError(resp.StatusCode(), resp.Body())
	}

	var list []models.Profile
	if err := json.Unmarshal(resp.Body(), &list); err != nil {
		return nil, fmt.Errorf("decode profile list: %w", err)
	}
	return list, nil
}

// RegisterResult is the backend's answer to a successful registration.
type RegisterResult struct {
	ID      string
	Profile *models.Profile
}

type registerResponse struct {
	ID   json.RawMessage `json:"id"`
	User *models.Profile `json:"user"`
}

// Register submits a normalized form plus both attachments as multipart form
// data and returns the assigned id.
func (c *Client) Register(ctx context.Context, form *models.RegistrationForm, progress ProgressFunc) (*RegisterResult, error) {
	req, closeFiles, err := c.multipartRequest(ctx, form, progress)
	if err != nil {
		return nil, err
	}
	defer closeFiles()

	resp, err := req.Post("/users/register")
	if err != nil {
		return nil, classifyTransportErr(err)
	}
	if resp.IsError() {
		return nil, statusError(resp.StatusCode(), resp.Body())
	}

	var rr registerResponse
	if err := json.Unmarshal(resp.Body(), &rr); err != nil {
		return nil, fmt.Errorf("decode register response: %w", err)
	}

	result := &RegisterResult{Profile: rr.User}
	if len(rr.ID) > 0 {
		result.ID = flexID(rr.ID)
	} else if rr.User != nil {
		result.ID = rr.User.ID
	}
	if result.ID == "" {
		return nil, fmt.Errorf("register response carries no id")
	}
	return result, nil
}

// Update submits the same form shape to the update endpoint. Attachment
// parts are omitted when their paths are empty, leaving the server-side
// files unchanged.
func (c *Client) Update(ctx context.Context, id string, form *models.RegistrationForm, progress ProgressFunc) error {
	req, closeFiles, err := c.multipartRequest(ctx, form, progress)
	if err != nil {
		return err
	}
	defer closeFiles()

	resp, err := req.Put("/users/update/" + id)
	if err != nil {
		return classifyTransportErr(err)
	}
	if resp.IsError() {
		return statusError(resp.StatusCode(), resp.Body())
	}
	return nil
}

// Delete removes a profile on the backend. The local cascade is the caller's
// job and must only run after this returns nil.
func (c *Client) Delete(ctx context.Context, id string) error {
	resp, err := c.http.R().SetContext(ctx).Delete("/users/delete/" + id)
	if err != nil {
		return classifyTransportErr(err)
	}
	if resp.IsError() {
		return statusError(resp.StatusCode(), resp.Body())
	}
	return nil
}

// AdminLogin posts credentials to the primary endpoint, falling back to the
// legacy path when the primary route is missing (404) or refuses the method
// (405).
func (c *Client) AdminLogin(ctx context.Context, username, password string) error {
	body := map[string]string{"username": username, "password": password}

	resp, err := c.http.R().SetContext(ctx).SetBody(body).Post("/admin/login")
	if err != nil {
		return classifyTransportErr(err)
	}
	if resp.StatusCode() == 404 || resp.StatusCode() == 405 {
		c.log.Debug(ctx, "primary admin login route missing, trying legacy", "status", resp.StatusCode())
		resp, err = c.http.R().SetContext(ctx).SetBody(body).Post("/users/admin/login")
		if err != nil {
			return classifyTransportErr(err)
		}
	}
	if resp.IsError() {
		return statusError(resp.StatusCode(), resp.Body())
	}
	return nil
}

// textFields lists the multipart part names in submission order.
var textFields = []string{
	"name", "gender", "dob", "birthplace", "kuldevat", "gotra",
	"height", "bloodGroup", "education", "profession",
	"fatherName", "fatherProfession", "motherName", "motherProfession",
	"siblings", "mama", "kaka", "address", "mobile",
}

func (c *Client) multipartRequest(ctx context.Context, form *models.RegistrationForm, progress ProgressFunc) (*resty.Request, func(), error) {
	req := c.http.R().SetContext(ctx)

	fields := make(map[string]string, len(textFields))
	for _, name := range textFields {
		fields[name] = form.Field(name)
	}
	req.SetMultipartFormData(fields)

	var opened []*os.File
	closeFiles := func() {
		for _, f := range opened {
			_ = f.Close()
		}
	}

	var total int64
	type part struct {
		param, name string
		file        *os.File
	}
	var parts []part

	for _, att := range []struct{ param, path string }{
		{"profilePhoto", form.ProfilePhotoPath},
		{"aadhaar", form.AadhaarPath},
	} {
		if att.path == "" {
			continue
		}
		f, err := os.Open(att.path)
		if err != nil {
			closeFiles()
			return nil, nil, fmt.Errorf("open %s: %w", att.path, err)
		}
		opened = append(opened, f)
		if st, err := f.Stat(); err == nil {
			total += st.Size()
		}
		parts = append(parts, part{param: att.param, name: f.Name(), file: f})
	}

	counter := &progressCounter{total: total, fn: progress}
	for _, p := range parts {
		req.SetFileReader(p.param, p.name, counter.wrap(p.file))
	}

	return req, closeFiles, nil
}

// progressCounter accumulates bytes read across all file parts of one
// request and reports them through the callback.
type progressCounter struct {
	total  int64
	loaded int64
	fn     ProgressFunc
}

func (p *progressCounter) wrap(r io.Reader) io.Reader {
	if p.fn == nil {
		return r
	}
	return &countingReader{r: r, c: p}
}

type countingReader struct {
	r io.Reader
	c *progressCounter
}

func (cr *countingReader) Read(b []byte) (int, error) {
	n, err := cr.r.Read(b)
	if n > 0 {
		cr.c.loaded += int64(n)
		cr.c.fn(cr.c.loaded, cr.c.total)
	}
	return n, err
}

func flexID(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		return n.String()
	}
	return strings.Trim(string(raw), `"`)
}
