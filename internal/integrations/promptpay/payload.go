package promptpay

import (
	"fmt"
	"strings"
)

// Идентификаторы EMVCo QR для PromptPay
const (
	idPayloadFormat   = "00"
	idPOIMethod       = "01"
	idMerchantAccount = "29"
	idCountry         = "58"
	idCurrency        = "53"
	idAmount          = "54"
	idCRC             = "63"

	payloadFormatEMV = "01"
	poiStatic        = "11"
	poiDynamic       = "12"

	merchantAID   = "A000000677010111"
	subPhone      = "01"
	subNationalID = "02"
	subEWallet    = "03"

	countryTH   = "TH"
	currencyTHB = "764"
)

func field(id, value string) string {
	return fmt.Sprintf("%s%02d%s", id, len(value), value)
}

// Payload строит строку EMVCo для PromptPay
// target телефон (10 цифр), номер ID-карты (13) или e-wallet (15); amount 0 означает сумму без фиксации
func Payload(target string, amount float64) (string, error) {
	if amount < 0 {
		return "", ErrInvalidAmount
	}

	sub, account, err := normalizeTarget(target)
	if err != nil {
		return "", err
	}

	poi := poiStatic
	if amount > 0 {
		poi = poiDynamic
	}

	var b strings.Builder
	b.WriteString(field(idPayloadFormat, payloadFormatEMV))
	b.WriteString(field(idPOIMethod, poi))
	b.WriteString(field(idMerchantAccount, field("00", merchantAID)+field(sub, account)))
	b.WriteString(field(idCountry, countryTH))
	b.WriteString(field(idCurrency, currencyTHB))
	if amount > 0 {
		b.WriteString(field(idAmount, fmt.Sprintf("%.2f", amount)))
	}
	b.WriteString(idCRC + "04")

	return b.String() + fmt.Sprintf("%04X", crc16(b.String())), nil
}

func normalizeTarget(target string) (string, string, error) {
	digits := onlyDigits(target)
	switch {
	case len(digits) == 10 && digits[0] == '0':
		return subPhone, "0066" + digits[1:], nil
	case len(digits) == 11 && strings.HasPrefix(digits, "66"):
		return subPhone, "00" + digits, nil
	case len(digits) == 13:
		return subNationalID, digits, nil
	case len(digits) == 15:
		return subEWallet, digits, nil
	default:
		return "", "", fmt.Errorf("%w: %q", ErrInvalidTarget, target)
	}
}

func onlyDigits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// crc16 CRC-16/CCITT-FALSE (poly 0x1021, init 0xFFFF)
func crc16(data string) uint16 {
	crc := uint16(0xFFFF)
	for i := 0; i < len(data); i++ {
		crc ^= uint16(data[i]) << 8
		for bit := 0; bit < 8; bit++ {
			if crc&0x8000 != 0 {
				crc = crc<<1 ^ 0x1021
			} else {
				crc <<= 1
			}
		}
	}
	return crc
}
