package dhlottery

import (
	"context"
	"fmt"
	"net/http"

	"dhapi/lib/htmlutil"

	"github.com/PuerkitoBio/goquery"
)

// Balance is the deposit summary from the account page, every figure is
// in won.
type Balance struct {
	// TotalDeposit is 총예치금.
	TotalDeposit int
	// Purchasable is 구매가능금액.
	Purchasable int
	// ReservedPurchase is 예약구매금액.
	ReservedPurchase int
	// PendingWithdrawal is 출금신청중금액.
	PendingWithdrawal int
	// NonPurchasable is 구매불가능금액, the sum of ReservedPurchase and
	// PendingWithdrawal.
	NonPurchasable int
	// MonthlyPurchases is 이번달누적구매금액.
	MonthlyPurchases int
}

// balanceLayout lists which td.ta_right cells hold Purchasable,
// ReservedPurchase, PendingWithdrawal, NonPurchasable and MonthlyPurchases
// in that order. Linking a bank account adds rows above them.
type balanceLayout struct {
	name  string
	cells [5]int
}

var (
	layoutWithAccount    = balanceLayout{name: "with account", cells: [5]int{3, 4, 5, 6, 7}}
	layoutWithoutAccount = balanceLayout{name: "without account", cells: [5]int{1, 2, 3, 4, 5}}
)

func detectBalanceLayout(doc *goquery.Document) (balanceLayout, error) {
	marker := doc.Find(".tbl_total_account_number_top tbody tr td")
	if marker.Length() == 0 {
		return balanceLayout{}, fmt.Errorf("could not find the linked account table")
	}
	if htmlutil.HasContent(marker) {
		return layoutWithAccount, nil
	}
	return layoutWithoutAccount, nil
}

// ParseBalance reads the figures out of the account page.
func ParseBalance(doc *goquery.Document) (Balance, error) {
	layout, err := detectBalanceLayout(doc)
	if err != nil {
		return Balance{}, fmt.Errorf("%w: %w", ErrBalance, err)
	}

	box := doc.Find("div.box.money").First()
	if box.Length() == 0 {
		return Balance{}, fmt.Errorf("%w: could not find the deposit summary", ErrBalance)
	}

	total, err := parseFigure(box.Find("p.total_new > strong"), "total deposit")
	if err != nil {
		return Balance{}, err
	}

	cells := box.Find("td.ta_right")
	figures := make([]int, len(layout.cells))
	for i, idx := range layout.cells {
		figures[i], err = parseFigure(
			cells.Eq(idx),
			fmt.Sprintf("cell %d (%s)", idx, layout.name),
		)
		if err != nil {
			return Balance{}, err
		}
	}

	return Balance{
		TotalDeposit:      total,
		Purchasable:       figures[0],
		ReservedPurchase:  figures[1],
		PendingWithdrawal: figures[2],
		NonPurchasable:    figures[3],
		MonthlyPurchases:  figures[4],
	}, nil
}

func parseFigure(sel *goquery.Selection, name string) (int, error) {
	text, ok := htmlutil.FirstChildText(sel)
	if !ok {
		return 0, fmt.Errorf("%w: could not find %s", ErrBalance, name)
	}
	n, err := htmlutil.ParseDigits(text)
	if err != nil {
		return 0, fmt.Errorf("%w: %s: %w", ErrBalance, name, err)
	}
	return n, nil
}

// Balance fetches the deposit summary of the logged in account.
func (c *Client) Balance(ctx context.Context) (balance Balance, err error) {
	ctx, span := tracer.Start(ctx, "Balance")
	defer func() { endSpan(span, err) }()

	res, err := c.send(ctx, http.MethodGet, endpointCashBalance, nil)
	if err != nil {
		c.tel.ReportBroken(report_client_balance, err)
		return Balance{}, err
	}
	doc, err := parseDocument(res)
	if err != nil {
		return Balance{}, fmt.Errorf("%w: %w", ErrBalance, err)
	}
	balance, err = ParseBalance(doc)
	if err != nil {
		c.tel.ReportBroken(report_client_balance, err)
		return Balance{}, err
	}
	return balance, nil
}
