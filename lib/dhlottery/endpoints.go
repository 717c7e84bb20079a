package dhlottery

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"dhapi/lib/lotto"

	"github.com/tidwall/gjson"
)

const (
	DefaultBaseUrl     = "https://dhlottery.co.kr"
	DefaultPurchaseUrl = "https://ol.dhlottery.co.kr"

	endpointDefaultSession = "/gameResult.do?method=byWin&wiselog=H_C_1_1"
	endpointSystemCheck    = "/index_check.html"
	endpointMain           = "/common.do?method=main"
	endpointLogin          = "/userSsl.do?method=login"
	endpointCashBalance    = "/userSsl.do?method=myPage"
	endpointNicePayInit    = "/nicePay.do?method=nicePayInit"
	endpointNicePayProcess = "/nicePay.do?method=nicePayProcess"

	// relative to the purchase url
	endpointReadySocket = "/olotto/game/egovUserReadySocket.json"
	endpointExecBuy     = "/olotto/game/execBuy.do"

	sessionCookie = "JSESSIONID"

	purchaseSuccessCode = "100"

	// K bank, the only bank that can issue a virtual account
	vbankBankCode = "089"
	goodsName     = "복권예치금"
	payMethod     = "VBANKFVB01"
)

var defaultHeaders = map[string]string{
	"User-Agent":                "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.77 Safari/537.36",
	"Connection":                "keep-alive",
	"Cache-Control":             "max-age=0",
	"sec-ch-ua":                 `" Not;A Brand";v="99", "Google Chrome";v="91", "Chromium";v="91"`,
	"sec-ch-ua-mobile":          "?0",
	"Upgrade-Insecure-Requests": "1",
	"Content-Type":              "application/x-www-form-urlencoded; charset=UTF-8",
	"Accept":                    "text/html,application/xhtml+xml,application/xml;q=0.9,image/avif,image/webp,image/apng,*/*;q=0.8,application/signed-exchange;v=b3;q=0.9",
	"Sec-Fetch-Site":            "same-site",
	"Sec-Fetch-Mode":            "navigate",
	"Sec-Fetch-User":            "?1",
	"Sec-Fetch-Dest":            "document",
	"Accept-Language":           "ko,en-US;q=0.9,en;q=0.8,ko-KR;q=0.7",
	"X-Requested-With":          "XMLHttpRequest",
}

type loginRequest struct {
	ReturnUrl string
	UserId    string
	Password  string
}

func (r loginRequest) formData() map[string]string {
	return map[string]string{
		"returnUrl":   r.ReturnUrl,
		"userId":      r.UserId,
		"password":    r.Password,
		"checkSave":   "off",
		"newsEventYn": "",
	}
}

type readySocketResponse struct {
	ReadyIp string
}

func decodeReadySocket(body []byte) (readySocketResponse, error) {
	var out readySocketResponse
	err := decodeFields(body, []jsonField{
		{key: "ready_ip", dst: &out.ReadyIp},
	})
	return out, err
}

type buyRequest struct {
	Round     int
	Direct    string
	Param     string
	GameCount int
}

func (r buyRequest) formData() map[string]string {
	return map[string]string{
		"round":      strconv.Itoa(r.Round),
		"direct":     r.Direct,
		"nBuyAmount": strconv.Itoa(r.GameCount * lotto.TicketPrice),
		"param":      r.Param,
		"gameCnt":    strconv.Itoa(r.GameCount),
	}
}

// buySlotParam is one element of the json array in buyRequest.Param.
type buySlotParam struct {
	GenType string `json:"genType"`
	// nil for auto tickets
	ArrGameChoiceNum *string `json:"arrGameChoiceNum"`
	// sic, the portal spells it this way
	Alpabet string `json:"alpabet"`
}

type buyResponse struct {
	Result struct {
		ResultCode       string   `json:"resultCode"`
		ResultMsg        string   `json:"resultMsg"`
		ArrGameChoiceNum []string `json:"arrGameChoiceNum"`
	} `json:"result"`
}

func decodeBuyResponse(body []byte) (buyResponse, error) {
	var out buyResponse
	err := requireFields(body, "result.resultCode")
	if err != nil {
		return out, err
	}
	err = json.Unmarshal(body, &out)
	if err != nil {
		return out, err
	}
	if out.Result.ResultCode == purchaseSuccessCode {
		if !gjson.GetBytes(body, "result.arrGameChoiceNum").IsArray() {
			return out, fmt.Errorf("missing fields: result.arrGameChoiceNum")
		}
	}
	return out, nil
}

type nicePayInitRequest struct {
	Price      int
	ExpiryDate string
}

func (r nicePayInitRequest) formData() map[string]string {
	return map[string]string{
		"PayMethod":     payMethod,
		"VbankBankCode": vbankBankCode,
		"price":         strconv.Itoa(r.Price),
		"goodsName":     goodsName,
		"vExp":          r.ExpiryDate,
	}
}

// nicePayInitResponse is the payment descriptor issued by the payment
// provider, it is forwarded almost as-is to nicePayProcess.
type nicePayInitResponse struct {
	PayMethod        string
	GoodsName        string
	GoodsCnt         string
	BuyerTel         string
	Moid             string
	MID              string
	UserIP           string
	MallIP           string
	MallUserID       string
	VbankExpDate     string
	BuyerEmail       string
	SocketYN         string
	GoodsCl          string
	EncodeParameters string
	EdiDate          string
	EncryptData      string
	Amt              string
	BuyerName        string
	VbankBankCode    string
	FxVrAccountNo    string
}

func decodeNicePayInit(body []byte) (nicePayInitResponse, error) {
	var out nicePayInitResponse
	err := decodeFields(body, []jsonField{
		{key: "PayMethod", dst: &out.PayMethod},
		{key: "GoodsName", dst: &out.GoodsName},
		{key: "GoodsCnt", dst: &out.GoodsCnt},
		{key: "BuyerTel", dst: &out.BuyerTel},
		{key: "Moid", dst: &out.Moid},
		{key: "MID", dst: &out.MID},
		{key: "UserIP", dst: &out.UserIP},
		{key: "MallIP", dst: &out.MallIP},
		{key: "MallUserID", dst: &out.MallUserID},
		{key: "VbankExpDate", dst: &out.VbankExpDate},
		{key: "BuyerEmail", dst: &out.BuyerEmail},
		{key: "SocketYN", dst: &out.SocketYN},
		{key: "GoodsCl", dst: &out.GoodsCl},
		{key: "EncodeParameters", dst: &out.EncodeParameters},
		{key: "EdiDate", dst: &out.EdiDate},
		{key: "EncryptData", dst: &out.EncryptData},
		{key: "amt", dst: &out.Amt},
		{key: "BuyerName", dst: &out.BuyerName},
		{key: "VbankBankCode", dst: &out.VbankBankCode},
		{key: "FxVrAccountNo", dst: &out.FxVrAccountNo},
	})
	return out, err
}

type nicePayProcessRequest struct {
	Descriptor nicePayInitResponse
}

func (r nicePayProcessRequest) formData() map[string]string {
	d := r.Descriptor
	return map[string]string{
		"PayMethod":        d.PayMethod,
		"GoodsName":        d.GoodsName,
		"GoodsCnt":         d.GoodsCnt,
		"BuyerTel":         d.BuyerTel,
		"Moid":             d.Moid,
		"MID":              d.MID,
		"UserIP":           d.UserIP,
		"MallIP":           d.MallIP,
		"MallUserID":       d.MallUserID,
		"VbankExpDate":     d.VbankExpDate,
		"BuyerEmail":       d.BuyerEmail,
		"SocketYN":         d.SocketYN,
		"GoodsCl":          d.GoodsCl,
		"EncodeParameters": d.EncodeParameters,
		"EdiDate":          d.EdiDate,
		"EncryptData":      d.EncryptData,
		"Amt":              d.Amt,
		"BuyerName":        d.BuyerName,
		"VbankBankCode":    d.VbankBankCode,
		"VbankNum":         d.FxVrAccountNo,
		"FxVrAccountNo":    d.FxVrAccountNo,
		"VBankAccountName": d.BuyerName,
		"svcInfoPgMsgYn":   "N",
		"OptionList":       "no_receipt",
		// 0 is a regular transfer, 1 is escrow
		"TransType": "0",
	}
}

type jsonField struct {
	key string
	dst *string
}

// decodeFields copies every field into its destination as a string, every
// field must exist (it may still be empty).
func decodeFields(body []byte, fields []jsonField) error {
	keys := make([]string, len(fields))
	for i, f := range fields {
		keys[i] = f.key
	}
	err := requireFields(body, keys...)
	if err != nil {
		return err
	}
	for _, f := range fields {
		*f.dst = gjson.GetBytes(body, f.key).String()
	}
	return nil
}

func requireFields(body []byte, paths ...string) error {
	if !gjson.ValidBytes(body) {
		return fmt.Errorf("invalid json")
	}
	var missing []string
	for _, p := range paths {
		if !gjson.GetBytes(body, p).Exists() {
			missing = append(missing, p)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing fields: %s", strings.Join(missing, ", "))
	}
	return nil
}
