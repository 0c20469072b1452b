package utils

import (
	"time"

	"github.com/go-resty/resty/v2"
)

// NewPaymentClient 创建访问支付处理器的 Resty 客户端
// 全系统对外的支付请求都从这里出去
func NewPaymentClient(endpoint, apiKey string) *resty.Client {
	client := resty.New().
		SetBaseURL(endpoint).
		SetTimeout(15 * time.Second). // 创建会话偶尔偏慢，给 15s
		SetRetryCount(2).
		SetHeader("User-Agent", "LaceLink-Go-App/1.0")

	if apiKey != "" {
		client.SetAuthToken(apiKey)
	}

	return client
}
