package vnpay

import (
	"crypto/hmac"
	"crypto/sha512"
	"encoding/hex"
	"errors"
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/LMLTech/startup-crowdfund-nhom12/internal/config"
	"golang.org/x/text/unicode/norm"
)

// 网关协议常量
const (
	Version   = "2.1.0"
	Command   = "pay"
	CurrCode  = "VND"
	OrderType = "other"
	Locale    = "vn"

	// ResponseCodeSuccess 网关返回的支付成功码
	ResponseCodeSuccess = "00"

	// 支付链接有效期
	linkValidity = 15 * time.Minute

	// 网关时间格式 yyyyMMddHHmmss
	timeLayout = "20060102150405"
)

// 网关约定的时区（GMT+7）
var gatewayZone = time.FixedZone("GMT+7", 7*60*60)

// ErrInvalidSignature 回调验签失败
var ErrInvalidSignature = errors.New("vnpay: invalid secure hash")

// ErrIncompleteConfig 网关配置不完整
var ErrIncompleteConfig = errors.New("vnpay: incomplete gateway config")

// Client VNPay网关客户端，负责出站签名与入站验签
type Client struct {
	cfg config.VnpayConfig
}

// NewClient 创建网关客户端
func NewClient(cfg config.VnpayConfig) *Client {
	return &Client{cfg: cfg}
}

// PaymentRequest 支付链接构造参数
type PaymentRequest struct {
	TxnRef    string    // 交易码，作为网关支付引用
	Amount    int64     // 金额（VND整数，网关侧按百分单位，构造时乘100）
	OrderInfo string    // 订单描述，只允许安全字符集
	IpAddr    string    // 发起方IP
	CreateAt  time.Time // 创建时间，有效期从此刻起15分钟
}

// BuildPaymentURL 构造签名后的支付跳转链接
//
// 签名规则：参数名按字典序升序排序，跳过空值，用原始值拼接
// name1=value1&name2=value2...，对拼接串做HMAC-SHA512，小写十六进制；
// URL查询串使用同一排序但对值做百分号编码，最后追加vnp_SecureHash。
func (c *Client) BuildPaymentURL(req PaymentRequest) (string, error) {
	if c.cfg.PayURL == "" || c.cfg.TmnCode == "" || c.cfg.HashSecret == "" {
		return "", ErrIncompleteConfig
	}

	createAt := req.CreateAt.In(gatewayZone)
	expireAt := createAt.Add(linkValidity)

	params := map[string]string{
		"vnp_Version":    Version,
		"vnp_Command":    Command,
		"vnp_TmnCode":    c.cfg.TmnCode,
		"vnp_Amount":     strconv.FormatInt(req.Amount*100, 10),
		"vnp_CurrCode":   CurrCode,
		"vnp_TxnRef":     req.TxnRef,
		"vnp_OrderInfo":  SanitizeOrderInfo(req.OrderInfo),
		"vnp_OrderType":  OrderType,
		"vnp_Locale":     Locale,
		"vnp_ReturnUrl":  c.cfg.ReturnURL,
		"vnp_IpAddr":     req.IpAddr,
		"vnp_CreateDate": createAt.Format(timeLayout),
		"vnp_ExpireDate": expireAt.Format(timeLayout),
	}

	hashData, query := canonicalize(params)
	secureHash := HmacSHA512(c.cfg.HashSecret, hashData)

	return c.cfg.PayURL + "?" + query + "&vnp_SecureHash=" + secureHash, nil
}

// VerifyCallback 校验网关回调参数的签名
//
// 取出vnp_SecureHash（并剔除vnp_SecureHashType），对剩余参数按与出站
// 相同的规则重建拼接串并重新计算HMAC，常量时间比较。验签不通过时
// 不得信任回调中的响应码。
func (c *Client) VerifyCallback(params map[string]string) error {
	if c.cfg.HashSecret == "" {
		return ErrIncompleteConfig
	}

	received := params["vnp_SecureHash"]
	if received == "" {
		return ErrInvalidSignature
	}

	filtered := make(map[string]string, len(params))
	for k, v := range params {
		if k == "vnp_SecureHash" || k == "vnp_SecureHashType" {
			continue
		}
		filtered[k] = v
	}

	hashData, _ := canonicalize(filtered)
	expected := HmacSHA512(c.cfg.HashSecret, hashData)

	if !hmac.Equal([]byte(strings.ToLower(received)), []byte(expected)) {
		return ErrInvalidSignature
	}
	return nil
}

// ResponseCodeMessage 网关响应码说明
func ResponseCodeMessage(code string) string {
	switch code {
	case "00":
		return "Giao dich thanh cong"
	case "07":
		return "Giao dich bi nghi ngo"
	case "09":
		return "The chua dang ky InternetBanking"
	case "11":
		return "Het han cho thanh toan"
	case "24":
		return "Khach hang huy giao dich"
	case "51":
		return "Tai khoan khong du so du"
	case "65":
		return "Vuot qua han muc giao dich trong ngay"
	case "75":
		return "Ngan hang thanh toan dang bao tri"
	default:
		return fmt.Sprintf("Giao dich khong thanh cong (ma %s)", code)
	}
}

// canonicalize 对参数做规范化：按参数名升序、跳过空值，
// 返回用于签名的原始拼接串和用于URL的编码查询串
func canonicalize(params map[string]string) (hashData string, query string) {
	names := make([]string, 0, len(params))
	for name, value := range params {
		if value == "" {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)

	var hashBuf, queryBuf strings.Builder
	for i, name := range names {
		if i > 0 {
			hashBuf.WriteByte('&')
			queryBuf.WriteByte('&')
		}
		hashBuf.WriteString(name)
		hashBuf.WriteByte('=')
		hashBuf.WriteString(params[name])

		queryBuf.WriteString(url.QueryEscape(name))
		queryBuf.WriteByte('=')
		queryBuf.WriteString(url.QueryEscape(params[name]))
	}
	return hashBuf.String(), queryBuf.String()
}

// HmacSHA512 计算小写十六进制的HMAC-SHA512签名
func HmacSHA512(secret, data string) string {
	mac := hmac.New(sha512.New, []byte(secret))
	mac.Write([]byte(data))
	return hex.EncodeToString(mac.Sum(nil))
}

// SanitizeOrderInfo 规范化订单描述：去掉越南语声调等附加符号，
// 只保留不破坏签名的安全字符（字母、数字、空格和少量标点）
func SanitizeOrderInfo(s string) string {
	decomposed := norm.NFD.String(s)

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range decomposed {
		// NFD分解后的组合符号直接丢弃
		if unicode.Is(unicode.Mn, r) {
			continue
		}
		switch r {
		case 'đ':
			r = 'd'
		case 'Đ':
			r = 'D'
		}
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ' ', r == '.', r == ',', r == '-', r == '_', r == ':':
			b.WriteRune(r)
		}
	}
	return strings.TrimSpace(b.String())
}
