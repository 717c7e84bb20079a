package dhlottery

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"dhapi/lib/lotto"
)

// Slot is one purchased ticket as echoed back by the portal.
type Slot struct {
	// Slot is the letter (A to E) of the ticket within its batch.
	Slot string
	// Mode is the korean label of how the numbers were chosen.
	Mode string
	// Numbers are the 6 chosen numbers, zero padded the way the portal sends them.
	Numbers []string
}

const slotLetters = "ABCDE"

// genTypes is the code the purchase endpoint expects for each mode. It is
// unrelated to the order of lotto.Mode and to resultModes.
var genTypes = map[lotto.Mode]string{
	lotto.ModeAuto:     "0",
	lotto.ModeManual:   "1",
	lotto.ModeSemiAuto: "2",
}

// resultModes maps the trailing digit of a purchased line to its label.
var resultModes = map[byte]string{
	'1': lotto.ModeManual.Label(),
	'2': lotto.ModeSemiAuto.Label(),
	'3': lotto.ModeAuto.Label(),
}

// Buy purchases a batch of 1 to 5 tickets for the current round and returns
// the slots the portal confirmed.
//
// The purchase cannot be undone once the portal accepted it. If a registered
// PurchaseObserver fails, Buy returns the slots together with an error that
// matches ErrObserver.
func (c *Client) Buy(ctx context.Context, tickets []lotto.Ticket) (slots []Slot, err error) {
	ctx, span := tracer.Start(ctx, "Buy")
	defer func() { endSpan(span, err) }()

	if len(tickets) == 0 || len(tickets) > lotto.MaxTicketsPerBatch {
		return nil, fmt.Errorf(
			"%w: a purchase takes 1 to %d tickets (got %d)",
			ErrPurchase, lotto.MaxTicketsPerBatch, len(tickets),
		)
	}
	param, err := encodeBuyParam(tickets)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPurchase, err)
	}

	res, err := c.send(ctx, http.MethodPost, c.purchaseEndpoint(endpointReadySocket), nil)
	if err != nil {
		c.tel.ReportBroken(report_client_buy, err)
		return nil, err
	}
	ready, err := decodeReadySocket(res.Body())
	if err != nil {
		err = fmt.Errorf("%w: ready socket: %w", ErrPurchase, err)
		c.tel.ReportBroken(report_client_buy, err)
		return nil, err
	}

	round, err := c.Round(ctx)
	if err != nil {
		return nil, err
	}

	form := buyRequest{
		Round:     round,
		Direct:    ready.ReadyIp,
		Param:     param,
		GameCount: len(tickets),
	}
	res, err = c.send(ctx, http.MethodPost, c.purchaseEndpoint(endpointExecBuy), form.formData())
	if err != nil {
		c.tel.ReportBroken(report_client_buy, err)
		return nil, err
	}
	result, err := decodeBuyResponse(res.Body())
	if err != nil {
		err = fmt.Errorf("%w: %w", ErrPurchase, err)
		c.tel.ReportBroken(report_client_buy, err)
		return nil, err
	}
	if result.Result.ResultCode != purchaseSuccessCode {
		c.tel.ReportWarning(report_client_buy, result.Result.ResultCode, result.Result.ResultMsg)
		return nil, fmt.Errorf(
			"%w: %s (code %s)",
			ErrPurchase, result.Result.ResultMsg, result.Result.ResultCode,
		)
	}

	slots, err = decodeSlots(result.Result.ArrGameChoiceNum)
	if err != nil {
		// the purchase went through, but we cannot tell what was bought
		err = fmt.Errorf("%w: %w", ErrPurchase, err)
		c.tel.ReportBroken(report_client_buy, err)
		return nil, err
	}
	c.tel.ReportCount(report_client_buy, int64(len(slots)))

	err = c.notifyObservers(ctx, slots)
	return slots, err
}

func encodeBuyParam(tickets []lotto.Ticket) (string, error) {
	params := make([]buySlotParam, len(tickets))
	for i, t := range tickets {
		genType, ok := genTypes[t.Mode()]
		if !ok {
			return "", fmt.Errorf("ticket %d: unknown mode %d", i, t.Mode())
		}
		var chosen *string
		if t.Mode() != lotto.ModeAuto {
			numbers := t.Numbers()
			parts := make([]string, len(numbers))
			for j, n := range numbers {
				parts[j] = strconv.Itoa(n)
			}
			joined := strings.Join(parts, ",")
			chosen = &joined
		}
		params[i] = buySlotParam{
			GenType:          genType,
			ArrGameChoiceNum: chosen,
			Alpabet:          slotLetters[i : i+1],
		}
	}
	out, err := json.Marshal(params)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

func decodeSlots(lines []string) ([]Slot, error) {
	slots := make([]Slot, len(lines))
	for i, line := range lines {
		slot, err := decodeSlot(line)
		if err != nil {
			return nil, err
		}
		slots[i] = slot
	}
	return slots, nil
}

// decodeSlot reads a line like "A|01|02|03|04|05|06|3". The portal has also
// been seen omitting the last separator ("A|01|02|03|04|05|063"), the mode
// is always the last character.
func decodeSlot(line string) (Slot, error) {
	line = strings.TrimSpace(line)
	if len(line) < 3 || line[1] != '|' {
		return Slot{}, fmt.Errorf("malformed slot '%s'", line)
	}

	letter := line[:1]
	if !strings.Contains(slotLetters, letter) {
		return Slot{}, fmt.Errorf("unknown slot letter in '%s'", line)
	}
	mode, ok := resultModes[line[len(line)-1]]
	if !ok {
		return Slot{}, fmt.Errorf("unknown mode digit in '%s'", line)
	}

	middle := strings.TrimSuffix(line[2:len(line)-1], "|")
	numbers := strings.Split(middle, "|")
	if len(numbers) != lotto.NumbersPerTicket {
		return Slot{}, fmt.Errorf(
			"expected %d numbers in '%s' (got %d)",
			lotto.NumbersPerTicket, line, len(numbers),
		)
	}
	return Slot{
		Slot:    letter,
		Mode:    mode,
		Numbers: numbers,
	}, nil
}
