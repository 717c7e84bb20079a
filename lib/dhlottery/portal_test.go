package dhlottery

import (
	"context"
	_ "embed"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

//go:embed testdata/balance_with_account.html
var balanceWithAccountPage string

//go:embed testdata/balance_without_account.html
var balanceWithoutAccountPage string

//go:embed testdata/virtual_account.html
var virtualAccountPage string

const (
	testUsername  = "tester"
	testPassword  = "hunter2"
	testSessionId = "test-session"
)

const (
	route_default_session = "/gameResult.do?method=byWin"
	route_system_check    = "/index_check.html"
	route_main            = "/common.do?method=main"
	route_login           = "/userSsl.do?method=login"
	route_my_page         = "/userSsl.do?method=myPage"
	route_nicepay_init    = "/nicePay.do?method=nicePayInit"
	route_nicepay_process = "/nicePay.do?method=nicePayProcess"
	route_ready_socket    = "/olotto/game/egovUserReadySocket.json"
	route_exec_buy        = "/olotto/game/execBuy.do"
)

const successfulBuyResponse = `{"loginYn":"Y","result":{"resultCode":"100","resultMsg":"SUCCESS","buyRound":"1101","arrGameChoiceNum":["A|07|12|23|31|38|44|1","B|01|02|09|15|27|452","C|03|10|14|22|35|40|3"]}}`

const defaultNicePayResponse = `{
	"PayMethod": "VBANK",
	"GoodsName": "복권예치금",
	"GoodsCnt": "1",
	"BuyerTel": "01012345678",
	"Moid": "M20240827000001",
	"MID": "dhlottery1m",
	"UserIP": "10.0.0.1",
	"MallIP": "10.0.0.2",
	"MallUserID": "tester",
	"VbankExpDate": "20240828",
	"BuyerEmail": "tester@example.com",
	"SocketYN": "Y",
	"GoodsCl": "1",
	"EncodeParameters": "Amt,BuyerName",
	"EdiDate": "20240827010000",
	"EncryptData": "c2lnbmF0dXJl",
	"amt": "50000",
	"BuyerName": "홍길동",
	"VbankBankCode": "089",
	"FxVrAccountNo": "70012345678901"
}`

// fakePortal serves just enough of the lottery portal for a Client to work
// against it.
type fakePortal struct {
	server *httptest.Server

	mu sync.Mutex
	// behavior
	maintenance     bool
	noSessionCookie bool
	rejectLogin     bool
	latestRound     string
	buyResponse     string
	balancePage     string
	nicePayResponse string
	status          map[string]int
	delay           map[string]time.Duration
	// observations
	forms    map[string]url.Values
	sessions map[string]string
	hits     map[string]int
}

func newFakePortal(t testing.TB) *fakePortal {
	p := &fakePortal{
		latestRound:     "1100",
		buyResponse:     successfulBuyResponse,
		balancePage:     balanceWithAccountPage,
		nicePayResponse: defaultNicePayResponse,
		status:          map[string]int{},
		delay:           map[string]time.Duration{},
		forms:           map[string]url.Values{},
		sessions:        map[string]string{},
		hits:            map[string]int{},
	}
	p.server = httptest.NewServer(http.HandlerFunc(p.handle))
	t.Cleanup(p.server.Close)
	return p
}

func routeOf(r *http.Request) string {
	method := r.URL.Query().Get("method")
	if method == "" {
		return r.URL.Path
	}
	return fmt.Sprintf("%s?method=%s", r.URL.Path, method)
}

func (p *fakePortal) handle(w http.ResponseWriter, r *http.Request) {
	route := routeOf(r)

	p.mu.Lock()
	delay := p.delay[route]
	p.mu.Unlock()
	if delay > 0 {
		select {
		case <-time.After(delay):
		case <-r.Context().Done():
			return
		}
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	p.hits[route]++
	if cookie, err := r.Cookie(sessionCookie); err == nil {
		p.sessions[route] = cookie.Value
	}
	err := r.ParseForm()
	if err == nil && len(r.PostForm) > 0 {
		p.forms[route] = r.PostForm
	}

	if status, ok := p.status[route]; ok {
		w.WriteHeader(status)
		return
	}

	switch route {
	case route_default_session:
		if p.maintenance {
			http.Redirect(w, r, route_system_check, http.StatusFound)
			return
		}
		if !p.noSessionCookie {
			http.SetCookie(w, &http.Cookie{Name: sessionCookie, Value: testSessionId, Path: "/"})
		}
		writeHtml(w, `<html><body><div id="container">당첨결과</div></body></html>`)
	case route_system_check:
		writeHtml(w, `<html><body><h1>시스템 점검중입니다</h1></body></html>`)
	case route_login:
		if p.rejectLogin {
			writeHtml(w, `<html><body><p>아이디 또는 비밀번호를 잘못 입력하셨습니다.</p><a class="btn_common" href="#">다시 시도</a></body></html>`)
			return
		}
		writeHtml(w, `<html><body><script>location.href='/common.do?method=main';</script></body></html>`)
	case route_main:
		writeHtml(w, fmt.Sprintf(`<html><body><div class="win_result"><h4><strong id="lottoDrwNo">%s</strong>회 당첨결과</h4></div></body></html>`, p.latestRound))
	case route_ready_socket:
		writeJson(w, `{"ready_ip":"172.0.0.1","ready_time":"0","ready_cnt":"0"}`)
	case route_exec_buy:
		writeJson(w, p.buyResponse)
	case route_my_page:
		writeHtml(w, p.balancePage)
	case route_nicepay_init:
		writeJson(w, p.nicePayResponse)
	case route_nicepay_process:
		writeHtml(w, virtualAccountPage)
	default:
		http.NotFound(w, r)
	}
}

func writeHtml(w http.ResponseWriter, body string) {
	w.Header().Set("Content-Type", "text/html; charset=UTF-8")
	w.Write([]byte(body))
}

func writeJson(w http.ResponseWriter, body string) {
	w.Header().Set("Content-Type", "application/json; charset=UTF-8")
	w.Write([]byte(body))
}

func (p *fakePortal) form(route string) url.Values {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.forms[route]
}

func (p *fakePortal) session(route string) string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.sessions[route]
}

func (p *fakePortal) hitCount(route string) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.hits[route]
}

func (p *fakePortal) options() ClientOptions {
	return ClientOptions{
		Username:    testUsername,
		Password:    testPassword,
		BaseUrl:     p.server.URL,
		PurchaseUrl: p.server.URL,
		Timeout:     5 * time.Second,
		RateLimit:   rate.Inf,
	}
}

func (p *fakePortal) client(t testing.TB) *Client {
	c, err := NewClient(context.Background(), p.options())
	require.NoError(t, err)
	return c
}
