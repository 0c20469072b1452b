package dto

// CheckoutRequest 结算请求
type CheckoutRequest struct {
	ProductID int64  `json:"productId"`
	Email     string `json:"email"` // 匿名结算时填写
}

// CheckoutResponse 结算响应
// CheckoutURL 指向处理器的托管支付页，前端 303 跳转过去
type CheckoutResponse struct {
	OK          bool   `json:"ok"`
	OrderRef    string `json:"orderRef"`
	CheckoutURL string `json:"checkoutUrl"`
}

// WebhookEvent 支付处理器回调事件
type WebhookEvent struct {
	ID   string `json:"id"`
	Type string `json:"type"` // checkout.session.completed ...
	Data struct {
		Reference string `json:"reference"` // 创建会话时传过去的 orderRef
		SessionID string `json:"sessionId"`
	} `json:"data"`
}

// UploadResponse 上传响应
type UploadResponse struct {
	OK   bool     `json:"ok"`
	Urls []string `json:"urls"`
}
