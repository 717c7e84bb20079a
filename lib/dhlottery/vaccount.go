package dhlottery

import (
	"context"
	"fmt"
	"net/http"

	"dhapi/lib/chrono"
	"dhapi/lib/deposit"
	"dhapi/lib/htmlutil"

	"github.com/PuerkitoBio/goquery"
)

// VirtualAccount is a bank account the deposit amount should be wired to.
type VirtualAccount struct {
	// Account is the bank and account number, ex. "케이뱅크 70000000000000".
	Account string
	// Amount is the amount to wire as shown by the portal, ex. "50,000원".
	Amount string
}

// AssignVirtualAccount asks the portal for a virtual account to top up the
// deposit with. The account expires at the end of the next day.
func (c *Client) AssignVirtualAccount(ctx context.Context, amount deposit.Deposit) (account VirtualAccount, err error) {
	ctx, span := tracer.Start(ctx, "AssignVirtualAccount")
	defer func() { endSpan(span, err) }()

	// the zero Deposit is not a valid amount
	_, err = deposit.New(amount.Amount())
	if err != nil {
		return VirtualAccount{}, fmt.Errorf("%w: %w", ErrBalance, err)
	}

	initReq := nicePayInitRequest{
		Price:      amount.Amount(),
		ExpiryDate: chrono.Tomorrow(c.clock).Format("20060102"),
	}
	res, err := c.send(ctx, http.MethodPost, endpointNicePayInit, initReq.formData())
	if err != nil {
		c.tel.ReportBroken(report_client_vaccount, err)
		return VirtualAccount{}, err
	}
	descriptor, err := decodeNicePayInit(res.Body())
	if err != nil {
		err = fmt.Errorf("%w: payment descriptor: %w", ErrBalance, err)
		c.tel.ReportBroken(report_client_vaccount, err)
		return VirtualAccount{}, err
	}

	process := nicePayProcessRequest{Descriptor: descriptor}
	res, err = c.send(ctx, http.MethodPost, endpointNicePayProcess, process.formData())
	if err != nil {
		c.tel.ReportBroken(report_client_vaccount, err)
		return VirtualAccount{}, err
	}
	doc, err := parseDocument(res)
	if err != nil {
		return VirtualAccount{}, fmt.Errorf("%w: %w", ErrBalance, err)
	}
	account, err = parseVirtualAccount(doc)
	if err != nil {
		c.tel.ReportBroken(report_client_vaccount, err)
		return VirtualAccount{}, err
	}
	return account, nil
}

func parseVirtualAccount(doc *goquery.Document) (VirtualAccount, error) {
	contents := doc.Find("#contents").First()
	if contents.Length() == 0 {
		return VirtualAccount{}, fmt.Errorf("%w: could not find the assigned account", ErrBalance)
	}
	account, ok := htmlutil.FirstChildText(contents.Find("span").First())
	if !ok {
		return VirtualAccount{}, fmt.Errorf("%w: could not find the account number", ErrBalance)
	}
	amount, ok := htmlutil.FirstChildText(contents.Find(".color_key1").First())
	if !ok {
		return VirtualAccount{}, fmt.Errorf("%w: could not find the amount", ErrBalance)
	}
	return VirtualAccount{
		Account: htmlutil.Normalize(account),
		Amount:  htmlutil.Normalize(amount),
	}, nil
}
