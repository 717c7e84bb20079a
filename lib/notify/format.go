package notify

import (
	"fmt"
	"strings"

	"dhapi/lib/dhlottery"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const (
	purchaseHeadline = "✅ 로또6/45 복권을 구매했습니다."
	balanceHeadline  = "✅ 예치금 현황을 조회했습니다."
	vaccountHeadline = "✅ 가상계좌를 할당했습니다."
	vaccountWarning  = "❗️입금 전 계좌주 이름을 꼭 확인하세요."
	balanceFootnote  = "(구매불가능금액 = 예약구매금액 + 출금신청중금액)"
)

var wonPrinter = message.NewPrinter(language.Korean)

// FormatMoney renders an amount in won with thousands separators, ex. "12,000 원".
func FormatMoney(n int) string {
	return wonPrinter.Sprintf("%d 원", n)
}

// FormatSlots renders a purchase as plain text, one slot per line.
func FormatSlots(slots []dhlottery.Slot) string {
	lines := make([]string, 0, len(slots)+1)
	lines = append(lines, purchaseHeadline)
	for _, s := range slots {
		lines = append(lines, fmt.Sprintf("%s %s %s", s.Slot, s.Mode, strings.Join(s.Numbers, " ")))
	}
	return strings.Join(lines, "\n")
}
