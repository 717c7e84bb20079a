package dhlottery

import (
	"context"
	"errors"
	"testing"

	"dhapi/lib/lotto"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

type recordingObserver struct {
	calls [][]Slot
	err   error
}

func (o *recordingObserver) OnPurchase(ctx context.Context, slots []Slot) error {
	o.calls = append(o.calls, slots)
	return o.err
}

func testTickets(t testing.TB) []lotto.Ticket {
	tickets, err := lotto.ParseTickets([]string{"7,12,23,31,38,44", "1,2", ""})
	require.NoError(t, err)
	return tickets
}

var expectedSlots = []Slot{
	{Slot: "A", Mode: "수동", Numbers: []string{"07", "12", "23", "31", "38", "44"}},
	{Slot: "B", Mode: "반자동", Numbers: []string{"01", "02", "09", "15", "27", "45"}},
	{Slot: "C", Mode: "자동", Numbers: []string{"03", "10", "14", "22", "35", "40"}},
}

func TestBuy(t *testing.T) {
	portal := newFakePortal(t)
	c := portal.client(t)
	observer := &recordingObserver{}
	require.NoError(t, c.AddObserver(observer))

	slots, err := c.Buy(context.Background(), testTickets(t))
	require.NoError(t, err)
	if diff := cmp.Diff(expectedSlots, slots); diff != "" {
		t.Fatalf("unexpected slots (-want +got):\n%s", diff)
	}

	form := portal.form(route_exec_buy)
	require.Equal(t, "1101", form.Get("round"))
	require.Equal(t, "172.0.0.1", form.Get("direct"))
	require.Equal(t, "3000", form.Get("nBuyAmount"))
	require.Equal(t, "3", form.Get("gameCnt"))
	require.Equal(
		t,
		`[{"genType":"1","arrGameChoiceNum":"7,12,23,31,38,44","alpabet":"A"},`+
			`{"genType":"2","arrGameChoiceNum":"1,2","alpabet":"B"},`+
			`{"genType":"0","arrGameChoiceNum":null,"alpabet":"C"}]`,
		form.Get("param"),
	)

	// the purchase host gets the session issued by the main host
	require.Equal(t, testSessionId, portal.session(route_ready_socket))
	require.Equal(t, testSessionId, portal.session(route_exec_buy))

	require.Len(t, observer.calls, 1)
	require.Equal(t, expectedSlots, observer.calls[0])
}

func TestBuyRejected(t *testing.T) {
	portal := newFakePortal(t)
	portal.buyResponse = `{"loginYn":"Y","result":{"resultCode":"-7","resultMsg":"구매가능 금액이 부족합니다."}}`
	c := portal.client(t)
	observer := &recordingObserver{}
	require.NoError(t, c.AddObserver(observer))

	slots, err := c.Buy(context.Background(), testTickets(t))
	require.Nil(t, slots)
	require.ErrorIs(t, err, ErrPurchase)
	require.ErrorIs(t, err, ErrClient)
	require.Contains(t, err.Error(), "구매가능 금액이 부족합니다.")
	require.Empty(t, observer.calls)
}

func TestBuyMalformedResponse(t *testing.T) {
	table := []struct {
		name     string
		response string
	}{
		{name: "not json", response: `<html>점검중</html>`},
		{name: "missing result code", response: `{"result":{"resultMsg":"SUCCESS"}}`},
		{name: "missing lines", response: `{"result":{"resultCode":"100","resultMsg":"SUCCESS"}}`},
		{name: "short line", response: `{"result":{"resultCode":"100","resultMsg":"SUCCESS","arrGameChoiceNum":["A|01|02|03|3"]}}`},
	}

	for _, row := range table {
		t.Run(row.name, func(t *testing.T) {
			portal := newFakePortal(t)
			portal.buyResponse = row.response
			c := portal.client(t)

			_, err := c.Buy(context.Background(), testTickets(t))
			require.ErrorIs(t, err, ErrPurchase)
		})
	}
}

func TestBuyBatchSize(t *testing.T) {
	portal := newFakePortal(t)
	c := portal.client(t)

	_, err := c.Buy(context.Background(), nil)
	require.ErrorIs(t, err, ErrPurchase)

	tickets, err := lotto.NewAutoTickets(5)
	require.NoError(t, err)
	extra, err := lotto.NewTicket(lotto.Auto())
	require.NoError(t, err)
	_, err = c.Buy(context.Background(), append(tickets, extra))
	require.ErrorIs(t, err, ErrPurchase)

	require.Equal(t, 0, portal.hitCount(route_ready_socket))
	require.Equal(t, 0, portal.hitCount(route_exec_buy))
}

func TestDecodeSlot(t *testing.T) {
	table := []struct {
		line     string
		expected Slot
		ok       bool
	}{
		{
			line:     "A|01|02|03|04|05|06|3",
			expected: Slot{Slot: "A", Mode: "자동", Numbers: []string{"01", "02", "03", "04", "05", "06"}},
			ok:       true,
		},
		{
			line:     "E|01|02|03|04|05|063",
			expected: Slot{Slot: "E", Mode: "자동", Numbers: []string{"01", "02", "03", "04", "05", "06"}},
			ok:       true,
		},
		{
			line:     "B|11|22|33|40|41|42|1",
			expected: Slot{Slot: "B", Mode: "수동", Numbers: []string{"11", "22", "33", "40", "41", "42"}},
			ok:       true,
		},
		{
			line:     "C|11|22|33|40|41|42|2",
			expected: Slot{Slot: "C", Mode: "반자동", Numbers: []string{"11", "22", "33", "40", "41", "42"}},
			ok:       true,
		},
		{line: "A|01|02|03|04|05|06|9"},
		{line: "F|01|02|03|04|05|06|3"},
		{line: "A|01|02|03|04|05|06|07|3"},
		{line: "A3"},
		{line: ""},
	}

	for _, row := range table {
		slot, err := decodeSlot(row.line)
		if !row.ok {
			require.Error(t, err, row.line)
			continue
		}
		require.NoError(t, err, row.line)
		require.Equal(t, row.expected, slot)
	}
}

func TestObservers(t *testing.T) {
	portal := newFakePortal(t)
	c := portal.client(t)

	first := &recordingObserver{}
	second := &recordingObserver{}
	require.NoError(t, c.AddObserver(first))
	require.NoError(t, c.AddObserver(first))
	require.NoError(t, c.AddObserver(second))
	c.RemoveObserver(second)
	c.RemoveObserver(second)
	c.RemoveObserver(&recordingObserver{})

	_, err := c.Buy(context.Background(), testTickets(t))
	require.NoError(t, err)
	require.Len(t, first.calls, 1)
	require.Empty(t, second.calls)
}

func TestObserverFailure(t *testing.T) {
	portal := newFakePortal(t)
	c := portal.client(t)

	cause := errors.New("printer on fire")
	failing := &recordingObserver{err: cause}
	after := &recordingObserver{}
	require.NoError(t, c.AddObserver(failing))
	require.NoError(t, c.AddObserver(after))

	slots, err := c.Buy(context.Background(), testTickets(t))
	require.ErrorIs(t, err, ErrObserver)
	require.ErrorIs(t, err, cause)
	// the purchase happened regardless
	require.Equal(t, expectedSlots, slots)
	require.Len(t, failing.calls, 1)
	require.Len(t, after.calls, 1)
}

type uncomparableObserver func(ctx context.Context, slots []Slot) error

func (o uncomparableObserver) OnPurchase(ctx context.Context, slots []Slot) error {
	return o(ctx, slots)
}

func TestObserverFunc(t *testing.T) {
	portal := newFakePortal(t)
	c := portal.client(t)

	calls := 0
	count := func(ctx context.Context, slots []Slot) error {
		calls++
		return nil
	}

	err := c.AddObserver(uncomparableObserver(count))
	require.ErrorIs(t, err, ErrObserver)
	c.RemoveObserver(uncomparableObserver(count))

	observer := ObserverFunc(count)
	require.NoError(t, c.AddObserver(observer))
	require.NoError(t, c.AddObserver(observer))
	require.NoError(t, c.AddObserver(ObserverFunc(count)))

	_, err = c.Buy(context.Background(), testTickets(t))
	require.NoError(t, err)
	require.Equal(t, 2, calls)

	c.RemoveObserver(observer)
	_, err = c.Buy(context.Background(), testTickets(t))
	require.NoError(t, err)
	require.Equal(t, 3, calls)
}
