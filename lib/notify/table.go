package notify

import (
	"context"
	"fmt"
	"io"

	"dhapi/lib/dhlottery"

	"github.com/jedib0t/go-pretty/v6/table"
)

// TablePrinter renders results as tables, it doubles as a purchase observer
// so that purchases are printed as soon as the portal confirms them.
type TablePrinter struct {
	out io.Writer
}

func NewTablePrinter(out io.Writer) *TablePrinter {
	return &TablePrinter{out: out}
}

func (p *TablePrinter) newTable() table.Writer {
	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.SetOutputMirror(p.out)
	return t
}

func (p *TablePrinter) OnPurchase(ctx context.Context, slots []dhlottery.Slot) error {
	p.PrintPurchase(slots)
	return nil
}

func (p *TablePrinter) PrintPurchase(slots []dhlottery.Slot) {
	fmt.Fprintln(p.out, purchaseHeadline)

	t := p.newTable()
	t.AppendHeader(table.Row{"슬롯", "Mode", "번호1", "번호2", "번호3", "번호4", "번호5", "번호6"})
	for _, s := range slots {
		row := table.Row{s.Slot, s.Mode}
		for _, n := range s.Numbers {
			row = append(row, n)
		}
		t.AppendRow(row)
	}
	t.Render()
}

func (p *TablePrinter) PrintBalance(b dhlottery.Balance) {
	fmt.Fprintln(p.out, balanceHeadline)

	t := p.newTable()
	t.AppendHeader(table.Row{"총예치금", "구매가능금액", "예약구매금액", "출금신청중금액", "구매불가능금액", "이번달누적구매금액"})
	t.AppendRow(table.Row{
		FormatMoney(b.TotalDeposit),
		FormatMoney(b.Purchasable),
		FormatMoney(b.ReservedPurchase),
		FormatMoney(b.PendingWithdrawal),
		FormatMoney(b.NonPurchasable),
		FormatMoney(b.MonthlyPurchases),
	})
	t.Render()

	fmt.Fprintln(p.out, balanceFootnote)
}

func (p *TablePrinter) PrintVirtualAccount(v dhlottery.VirtualAccount) {
	fmt.Fprintln(p.out, vaccountHeadline)
	fmt.Fprintln(p.out, vaccountWarning)

	t := p.newTable()
	t.AppendHeader(table.Row{"전용가상계좌", "결제신청금액"})
	t.AppendRow(table.Row{v.Account, v.Amount})
	t.Render()
}
