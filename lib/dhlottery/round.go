package dhlottery

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"dhapi/lib/htmlutil"
)

// Round returns the number of the draw currently on sale, the main page
// only shows the latest completed draw.
func (c *Client) Round(ctx context.Context) (round int, err error) {
	ctx, span := tracer.Start(ctx, "Round")
	defer func() { endSpan(span, err) }()

	res, err := c.send(ctx, http.MethodGet, endpointMain, nil)
	if err != nil {
		c.tel.ReportBroken(report_client_round, err)
		return 0, err
	}
	doc, err := parseDocument(res)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrProtocol, err)
	}

	sel := doc.Find("strong#lottoDrwNo")
	if sel.Length() == 0 {
		err = fmt.Errorf("%w: could not find the latest round on the main page", ErrProtocol)
		c.tel.ReportBroken(report_client_round, err)
		return 0, err
	}
	text := strings.TrimSpace(htmlutil.GetText(sel.Get(0)))
	latest, err := strconv.Atoi(text)
	if err != nil {
		err = fmt.Errorf("%w: latest round is not a number (got '%s')", ErrProtocol, text)
		c.tel.ReportBroken(report_client_round, err)
		return 0, err
	}
	return latest + 1, nil
}
