package entity

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/LouYuanbo1/epicgamedata/internal/domain/model"
)

var (
	ErrMalformedJSON = errors.New("商品结构化数据不是合法的JSON")
	ErrInvalidSku    = errors.New("商品sku缺失或格式错误")
)

// RowGameData 商品页中 schema.org Product 结构化数据的原始形态
type RowGameData struct {
	Sku              string       `json:"sku"`
	Name             string       `json:"name"`
	Description      string       `json:"description"`
	Image            StringList   `json:"image"`
	Url              string       `json:"url"`
	DatePublished    string       `json:"datePublished"`
	Brand            *model.Brand `json:"brand"`
	Producer         string       `json:"producer"`
	Publisher        string       `json:"publisher"`
	GamePlatform     StringList   `json:"gamePlatform"`
	OperatingSystem  StringList   `json:"operatingSystem"`
	MainEntityOfPage bool         `json:"mainEntityOfPage"`
	Offers           []Offer      `json:"offers"`
}

type Offer struct {
	AcceptedPaymentMethod   StringList         `json:"acceptedPaymentMethod"`
	Availability            string             `json:"availability"`
	AvailableDeliveryMethod string             `json:"availableDeliveryMethod"`
	Category                string             `json:"category"`
	MainEntityOfPage        bool               `json:"mainEntityOfPage"`
	Name                    string             `json:"name"`
	Description             string             `json:"description"`
	PriceSpecification      PriceSpecification `json:"priceSpecification"`
	PriceValidUntil         string             `json:"priceValidUntil"`
	Url                     string             `json:"url"`
	PriceCurrency           string             `json:"priceCurrency"`
}

type PriceSpecification struct {
	Price         float64 `json:"price"`
	PriceCurrency string  `json:"priceCurrency"`
}

// StringList 兼容商店有时输出字符串、有时输出数组的字段
type StringList []string

func (s *StringList) UnmarshalJSON(data []byte) error {
	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		if single == "" {
			*s = nil
		} else {
			*s = StringList{single}
		}
		return nil
	}
	var list []string
	if err := json.Unmarshal(data, &list); err != nil {
		return err
	}
	*s = list
	return nil
}

func (s StringList) First() string {
	if len(s) == 0 {
		return ""
	}
	return s[0]
}

// ParseRowGameData 解析页面中取到的JSON文本,空文本视为空对象
func ParseRowGameData(raw string) (*RowGameData, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return &RowGameData{}, nil
	}
	var data RowGameData
	if err := json.Unmarshal([]byte(raw), &data); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedJSON, err)
	}
	return &data, nil
}

// SplitSku sku格式为 namespace:gameId
func (r *RowGameData) SplitSku() (namespace, gameId string, err error) {
	namespace, gameId, ok := strings.Cut(r.Sku, ":")
	if !ok || namespace == "" || gameId == "" {
		return "", "", fmt.Errorf("%w: %q", ErrInvalidSku, r.Sku)
	}
	return namespace, gameId, nil
}

func (r *RowGameData) Validate() error {
	_, _, err := r.SplitSku()
	return err
}

// ToDocument 转换为归一化记录。
// 描述的优先级: url与商品url后缀匹配的第一个offer的描述 > 商品描述 > 页面上的备用描述元素
func (r *RowGameData) ToDocument(fallbackDescription string) *model.GameDoc {
	namespace, gameId, _ := r.SplitSku()

	description := ""
	for _, offer := range r.Offers {
		if offer.Url != "" && strings.HasSuffix(r.Url, offer.Url) {
			description = offer.Description
			break
		}
	}
	if description == "" {
		description = r.Description
	}
	if description == "" {
		description = strings.TrimSpace(fallbackDescription)
	}

	var brand *model.Brand
	if r.Brand != nil {
		brand = &model.Brand{Name: r.Brand.Name}
	}

	return &model.GameDoc{
		Namespace:     namespace,
		GameId:        gameId,
		Brand:         brand,
		DatePublished: r.DatePublished,
		Description:   description,
		GamePlatform:  r.GamePlatform,
		Image:         r.Image.First(),
		Name:          r.Name,
		Producer:      r.Producer,
		Publisher:     r.Publisher,
		Sku:           r.Sku,
		Url:           r.Url,
	}
}
