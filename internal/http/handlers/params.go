package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
	"time"

	"todo_api/internal/domain"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

var uuidPattern = regexp.MustCompile(`(?i)^[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}$`)

// parseID accepts only the canonical hyphenated UUID form.
func parseID(s string) (uuid.UUID, error) {
	if !uuidPattern.MatchString(s) {
		return uuid.Nil, domain.Validationf("Invalid UUID format.")
	}
	return uuid.Parse(s)
}

// parseBool accepts true/t/1 and false/f/0 in any case.
func parseBool(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "t", "1":
		return true, nil
	case "false", "f", "0":
		return false, nil
	default:
		return false, domain.Validationf("Invalid parameter value %s. Expected: true, false.", s)
	}
}

// parseEpoch reads a deadline given in epoch seconds.
func parseEpoch(s string) (time.Time, error) {
	sec, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return time.Time{}, domain.Validationf("Invalid deadline, expected a valid epoch: %s", s)
	}
	return time.Unix(sec, 0).UTC(), nil
}

// filterFromQuery builds a Filter from the list query parameters. Empty
// parameters are treated as absent.
func filterFromQuery(c *gin.Context) (domain.Filter, error) {
	var f domain.Filter
	if v := c.Query("title"); v != "" {
		f.Title = &v
	}
	if v := c.Query("done"); v != "" {
		b, err := parseBool(v)
		if err != nil {
			return f, err
		}
		f.Done = &b
	}
	if v := c.Query("start_deadline"); v != "" {
		t, err := parseEpoch(v)
		if err != nil {
			return f, err
		}
		f.StartDeadline = &t
	}
	if v := c.Query("end_deadline"); v != "" {
		t, err := parseEpoch(v)
		if err != nil {
			return f, err
		}
		f.EndDeadline = &t
	}
	return f, nil
}

// flexBool decodes a JSON boolean or one of the textual boolean tokens.
type flexBool bool

func (b *flexBool) UnmarshalJSON(data []byte) error {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	var s string
	switch x := v.(type) {
	case bool:
		*b = flexBool(x)
		return nil
	case string:
		s = x
	case float64:
		s = strconv.FormatFloat(x, 'f', -1, 64)
	default:
		s = string(data)
	}
	parsed, err := parseBool(s)
	if err != nil {
		return err
	}
	*b = flexBool(parsed)
	return nil
}

// epochTime decodes epoch seconds given as a JSON number or string.
type epochTime time.Time

func (e *epochTime) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	t, err := parseEpoch(s)
	if err != nil {
		return err
	}
	*e = epochTime(t)
	return nil
}

// taskPayload is the body of a task create or update. Each field records
// whether its key was present, so an explicit null can clear a value.
type taskPayload struct {
	Title       domain.Optional[*string]    `json:"title"`
	Description domain.Optional[*string]    `json:"description"`
	Done        domain.Optional[*flexBool]  `json:"done"`
	Deadline    domain.Optional[*epochTime] `json:"deadline"`
	ProjectID   domain.Optional[*uuid.UUID] `json:"project_id"`
}

// attributes converts the payload to the facade's attribute bag. A null
// title or done is treated as not supplied.
func (p taskPayload) attributes() domain.TaskAttributes {
	var a domain.TaskAttributes
	if p.Title.Set && p.Title.Value != nil {
		a.Title = domain.Some(*p.Title.Value)
	}
	if p.Description.Set {
		a.Description = domain.Some(p.Description.Value)
	}
	if p.Done.Set && p.Done.Value != nil {
		a.Done = domain.Some(bool(*p.Done.Value))
	}
	if p.Deadline.Set {
		var d *time.Time
		if p.Deadline.Value != nil {
			t := time.Time(*p.Deadline.Value)
			d = &t
		}
		a.Deadline = domain.Some(d)
	}
	if p.ProjectID.Set {
		a.ProjectID = domain.Some(p.ProjectID.Value)
	}
	return a
}

// decodeJSON reads the request body into v. An empty body leaves v as is.
func decodeJSON(c *gin.Context, v any) error {
	err := json.NewDecoder(c.Request.Body).Decode(v)
	if err == nil || errors.Is(err, io.EOF) {
		return nil
	}
	if errors.Is(err, domain.ErrValidation) {
		return err
	}
	return fmt.Errorf("%w: Invalid JSON request", domain.ErrValidation)
}

func requireJSON(c *gin.Context) error {
	if c.ContentType() != "application/json" {
		return domain.Validationf("Content-Type must be application/json")
	}
	return nil
}
