package service

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"

	"lacelink_dev_v1_202608/internal/api/dto"
	"lacelink_dev_v1_202608/internal/model"
	"lacelink_dev_v1_202608/internal/repository"
	"lacelink_dev_v1_202608/pkg/utils"
)

// ==================== 配置 ====================

// CheckoutConfig 结算配置
type CheckoutConfig struct {
	Endpoint      string // 处理器 API 端点，空表示未配置
	APIKey        string
	WebhookSecret string
	SiteURL       string // 成功/取消页跳回的站点地址
}

// ==================== CheckoutService 结算服务 ====================

// CheckoutService 支付 handoff
// 只做两件事：建订单 + 找处理器要托管支付页；支付过程全部在处理器侧
type CheckoutService struct {
	orderRepo   repository.OrderRepository
	productRepo repository.ProductRepository
	cfg         *CheckoutConfig
	client      *resty.Client
}

// NewCheckoutService 创建结算服务
func NewCheckoutService(orderRepo repository.OrderRepository, productRepo repository.ProductRepository, cfg *CheckoutConfig) *CheckoutService {
	return &CheckoutService{
		orderRepo:   orderRepo,
		productRepo: productRepo,
		cfg:         cfg,
		client:      utils.NewPaymentClient(cfg.Endpoint, cfg.APIKey),
	}
}

// ==================== 会话创建 ====================

// sessionRequest 处理器创建会话的请求体
type sessionRequest struct {
	AmountCents int64  `json:"amountCents"`
	Currency    string `json:"currency"`
	Reference   string `json:"reference"`
	Description string `json:"description"`
	SuccessURL  string `json:"successUrl"`
	CancelURL   string `json:"cancelUrl"`
}

// sessionResponse 处理器创建会话的响应体
type sessionResponse struct {
	SessionID string `json:"sessionId"`
	URL       string `json:"url"`
}

// CreateCheckout 创建订单并请求托管支付页
func (s *CheckoutService) CreateCheckout(ctx context.Context, buyerUserID int64, req *dto.CheckoutRequest) (*dto.CheckoutResponse, error) {
	if s.cfg.Endpoint == "" {
		return nil, ErrPaymentNotConfigured
	}

	product, err := s.productRepo.GetByID(ctx, req.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil || !product.IsActive {
		return nil, ErrProductNotFound
	}

	order := &model.Order{
		OrderRef:    uuid.NewString(),
		ProductID:   product.ID,
		BuyerUserID: buyerUserID,
		BuyerEmail:  strings.ToLower(strings.TrimSpace(req.Email)),
		AmountCents: product.PriceCents,
		Currency:    product.Currency,
		Status:      model.OrderStatusPending,
	}
	if err := s.orderRepo.Create(ctx, order); err != nil {
		return nil, err
	}

	var session sessionResponse
	resp, err := s.client.R().
		SetContext(ctx).
		SetBody(&sessionRequest{
			AmountCents: order.AmountCents,
			Currency:    order.Currency,
			Reference:   order.OrderRef,
			Description: fmt.Sprintf("LaceLink Purchase (%s)", product.Name),
			SuccessURL:  s.cfg.SiteURL + "/checkout/success",
			CancelURL:   s.cfg.SiteURL + "/checkout/cancel",
		}).
		SetResult(&session).
		Post("/sessions")
	if err != nil {
		return nil, fmt.Errorf("支付处理器请求失败: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("支付处理器返回 %d: %s", resp.StatusCode(), resp.String())
	}
	if session.URL == "" {
		return nil, errors.New("支付处理器没有返回托管页地址")
	}

	order.ProviderSessionID = session.SessionID
	if err := s.orderRepo.Update(ctx, order); err != nil {
		return nil, err
	}

	return &dto.CheckoutResponse{
		OK:          true,
		OrderRef:    order.OrderRef,
		CheckoutURL: session.URL,
	}, nil
}

// ==================== 回调 ====================

// VerifySignature 校验回调签名
// 签名 = hex(HMAC-SHA256(webhookSecret, body))，常量时间比较
func (s *CheckoutService) VerifySignature(signature string, body []byte) bool {
	if s.cfg.WebhookSecret == "" || signature == "" {
		return false
	}
	mac := hmac.New(sha256.New, []byte(s.cfg.WebhookSecret))
	mac.Write(body)
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(strings.TrimSpace(signature)))
}

// HandleWebhook 处理支付回调
// 事件按 ID 去重（处理器会重放）；只关心 checkout.session.completed
func (s *CheckoutService) HandleWebhook(ctx context.Context, signature string, body []byte) error {
	if !s.VerifySignature(signature, body) {
		return ErrBadSignature
	}

	var event dto.WebhookEvent
	if err := json.Unmarshal(body, &event); err != nil {
		return ErrBadWebhookPayload
	}

	if event.ID != "" {
		if _, seen := utils.GetCache("webhook:" + event.ID); seen {
			return nil // 重放，直接吞掉
		}
		utils.SetCache("webhook:"+event.ID, "1", 24*time.Hour)
	}

	if event.Type != "checkout.session.completed" {
		return nil
	}
	if event.Data.Reference == "" {
		return ErrBadWebhookPayload
	}

	return s.orderRepo.MarkPaid(ctx, event.Data.Reference, body)
}

// ==================== 错误定义 ====================

var (
	ErrPaymentNotConfigured = errors.New("Payment is not configured. Add payment endpoint env vars.")
	ErrBadSignature         = errors.New("Missing webhook secret/signature")
	ErrBadWebhookPayload    = errors.New("回调报文不合法")
)
