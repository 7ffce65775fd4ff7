package rowriter

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/TigerTown3661/dvi-bridge/internal/common/errors"
)

// The vendor JSON API has no call that returns a checklist RowID; the only
// way to get one is to fetch the web-form page a technician would see and
// pull it out of the markup. Everything in this file is reverse-engineered
// from those pages and must be treated as a best-effort compatibility shim:
// a vendor UI update can break any of it.

// FormFields names the web-form inputs the comment and condition values are
// posted under. Resolved per page by heuristic; replace or hard-code per
// vendor install without touching calling code.
type FormFields struct {
	CommentField   string
	ConditionField string
}

// Hard-coded fallbacks known to work on current installs.
const (
	fallbackCommentField   = "ctl09"
	fallbackConditionField = "ctl07"
)

// ResolveFormFields guesses the comment and condition field names from DOM
// position: the last textarea is taken as the comment field, the first
// select as the condition dropdown. There is no verification that the
// guessed fields are semantically correct.
func ResolveFormFields(doc *goquery.Document) FormFields {
	fields := FormFields{
		CommentField:   fallbackCommentField,
		ConditionField: fallbackConditionField,
	}

	if name, ok := doc.Find("textarea").Last().Attr("name"); ok && name != "" {
		fields.CommentField = name
	}
	if name, ok := doc.Find("select").First().Attr("name"); ok && name != "" {
		fields.ConditionField = name
	}

	return fields
}

// ResolveRowID derives the DVI RowID for a repair order by fetching
// candidate checklist pages in the configured preference order and parsing
// the first one that answers with a success status. Returns a
// ROWID_RESOLUTION_FAILED error carrying the last encountered error when
// every candidate is exhausted.
func (c *Client) ResolveRowID(ctx context.Context, token, roNumber string) (string, error) {
	lastError := "no candidate pages configured"

	for _, page := range c.cfg.RowIDPages {
		pageAddr := c.pageURL(fmt.Sprintf("/%s?Type=R&RONumber=%s", page, url.QueryEscape(roNumber)))

		doc, status, err := c.fetchPage(ctx, token, pageAddr)
		if err != nil {
			lastError = fmt.Sprintf("%s: %v", pageAddr, err)
			continue
		}
		if status >= 400 {
			lastError = fmt.Sprintf("%s returned HTTP %d", pageAddr, status)
			continue
		}

		if rowID := extractRowID(doc); rowID != "" {
			return rowID, nil
		}

		lastError = fmt.Sprintf("no RowID found in form action or hOriginalROWID at %s", pageAddr)
	}

	return "", errors.NewResolutionError(
		fmt.Sprintf("unable to determine RowID for RO %s; last error: %s", roNumber, lastError))
}

// extractRowID looks for the identifier in preference order: an ID= or
// rowid= query parameter embedded in the first form's action attribute,
// then the hidden hOriginalROWID input.
func extractRowID(doc *goquery.Document) string {
	if action, ok := doc.Find("form").First().Attr("action"); ok {
		// e.g. "./Checklist.aspx?ID=6894...&Type=R"
		if rowID := queryParamFromAction(action, "ID="); rowID != "" {
			return rowID
		}
		// e.g. "./EditChecklist.aspx?rowid=cd64...&Type=R"
		if rowID := queryParamFromAction(action, "rowid="); rowID != "" {
			return rowID
		}
	}

	if value, ok := doc.Find("input#hOriginalROWID").Attr("value"); ok && value != "" {
		return value
	}

	return ""
}

func queryParamFromAction(action, marker string) string {
	idx := strings.Index(action, marker)
	if idx < 0 {
		return ""
	}
	value := action[idx+len(marker):]
	if amp := strings.Index(value, "&"); amp >= 0 {
		value = value[:amp]
	}
	return value
}

// PostWebFormComment saves a comment (and optional condition) through the
// vendor's ASP.NET web form: fetch the edit page for the RowID, carry the
// hidden state fields back, and post the save. This is the path that makes
// notes appear in the native DVI UI.
func (c *Client) PostWebFormComment(ctx context.Context, token, rowID, comment, condition string) error {
	pageAddr := c.pageURL(fmt.Sprintf("/EditChecklist.aspx?rowid=%s&Type=R", url.QueryEscape(rowID)))

	doc, status, err := c.fetchPage(ctx, token, pageAddr)
	if err != nil {
		return err
	}
	if status >= 400 {
		return errors.NewVendorRequestError("EditChecklist.aspx", status, "")
	}

	hidden := func(id string, required bool) (string, error) {
		value, ok := doc.Find("input#" + id).Attr("value")
		if !ok && required {
			return "", errors.NewResolutionError(fmt.Sprintf("missing required hidden field %s", id))
		}
		return value, nil
	}

	viewState, err := hidden("__VIEWSTATE", true)
	if err != nil {
		return err
	}
	viewStateGen, err := hidden("__VIEWSTATEGENERATOR", true)
	if err != nil {
		return err
	}
	eventValidation, err := hidden("__EVENTVALIDATION", true)
	if err != nil {
		return err
	}
	originalRowID, err := hidden("hOriginalROWID", true)
	if err != nil {
		return err
	}

	fields := ResolveFormFields(doc)

	payload := url.Values{}
	payload.Set("__VIEWSTATE", viewState)
	payload.Set("__VIEWSTATEGENERATOR", viewStateGen)
	payload.Set("__EVENTVALIDATION", eventValidation)
	payload.Set("hOriginalROWID", originalRowID)
	payload.Set(fields.CommentField, comment)
	payload.Set(fields.ConditionField, condition)
	payload.Set("bSave", "Save")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, pageAddr, strings.NewReader(payload.Encode()))
	if err != nil {
		return fmt.Errorf("failed to create web-form post: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.jsonClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to post web form: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return errors.NewVendorRequestError("EditChecklist.aspx save", resp.StatusCode, "")
	}

	return nil
}

// fetchPage GETs a vendor HTML page with the bearer token and parses it.
func (c *Client) fetchPage(ctx context.Context, token, pageAddr string) (*goquery.Document, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageAddr, nil)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to create page request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.jsonClient.Do(req)
	if err != nil {
		return nil, 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return nil, resp.StatusCode, nil
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, fmt.Errorf("failed to parse page: %w", err)
	}

	return doc, resp.StatusCode, nil
}
