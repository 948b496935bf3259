package pricing

import "strings"

// 配送地域コード
const (
	ZoneHokkaido = "hokkaido"
	ZoneTohoku   = "tohoku"
	ZoneKanto    = "kanto"
	ZoneChubu    = "chubu"
	ZoneKinki    = "kinki"
	ZoneChugoku  = "chugoku"
	ZoneShikoku  = "shikoku"
	ZoneKyushu   = "kyushu"
	ZoneOkinawa  = "okinawa"
)

// Zones 全 9 地域（フォールバック行列の走査順）
var Zones = []string{
	ZoneHokkaido,
	ZoneTohoku,
	ZoneKanto,
	ZoneChubu,
	ZoneKinki,
	ZoneChugoku,
	ZoneShikoku,
	ZoneKyushu,
	ZoneOkinawa,
}

// SizeTiers 全 4 サイズ区分
var SizeTiers = []string{"60", "80", "100", "120"}

// prefectureZones 47 都道府県 → 9 地域の固定対応表
var prefectureZones = map[string]string{
	"北海道": ZoneHokkaido,

	"青森県": ZoneTohoku,
	"岩手県": ZoneTohoku,
	"宮城県": ZoneTohoku,
	"秋田県": ZoneTohoku,
	"山形県": ZoneTohoku,
	"福島県": ZoneTohoku,

	"茨城県":  ZoneKanto,
	"栃木県":  ZoneKanto,
	"群馬県":  ZoneKanto,
	"埼玉県":  ZoneKanto,
	"千葉県":  ZoneKanto,
	"東京都":  ZoneKanto,
	"神奈川県": ZoneKanto,

	"新潟県": ZoneChubu,
	"富山県": ZoneChubu,
	"石川県": ZoneChubu,
	"福井県": ZoneChubu,
	"山梨県": ZoneChubu,
	"長野県": ZoneChubu,
	"岐阜県": ZoneChubu,
	"静岡県": ZoneChubu,
	"愛知県": ZoneChubu,

	"三重県":  ZoneKinki,
	"滋賀県":  ZoneKinki,
	"京都府":  ZoneKinki,
	"大阪府":  ZoneKinki,
	"兵庫県":  ZoneKinki,
	"奈良県":  ZoneKinki,
	"和歌山県": ZoneKinki,

	"鳥取県": ZoneChugoku,
	"島根県": ZoneChugoku,
	"岡山県": ZoneChugoku,
	"広島県": ZoneChugoku,
	"山口県": ZoneChugoku,

	"徳島県": ZoneShikoku,
	"香川県": ZoneShikoku,
	"愛媛県": ZoneShikoku,
	"高知県": ZoneShikoku,

	"福岡県":  ZoneKyushu,
	"佐賀県":  ZoneKyushu,
	"長崎県":  ZoneKyushu,
	"熊本県":  ZoneKyushu,
	"大分県":  ZoneKyushu,
	"宮崎県":  ZoneKyushu,
	"鹿児島県": ZoneKyushu,

	"沖縄県": ZoneOkinawa,
}

// strippedPrefectureZones 末尾の「都・道・府・県」を除いた照合用の表
var strippedPrefectureZones = buildStrippedPrefectureZones()

func buildStrippedPrefectureZones() map[string]string {
	m := make(map[string]string, len(prefectureZones))
	for name, zone := range prefectureZones {
		m[stripPrefectureSuffix(name)] = zone
	}
	return m
}

func stripPrefectureSuffix(name string) string {
	runes := []rune(name)
	if len(runes) == 0 {
		return name
	}
	switch runes[len(runes)-1] {
	case '都', '道', '府', '県':
		return string(runes[:len(runes)-1])
	}
	return name
}

// ResolveZone 都道府県名から配送地域を求める
// 完全一致を試し、外れた場合は末尾の接尾辞を除いた照合を行う。
// どちらも外れたときは空文字列を返す（呼び出し側でフォールバック処理する）。
func ResolveZone(prefecture string) string {
	name := strings.TrimSpace(prefecture)
	if name == "" {
		return ""
	}
	if zone, ok := prefectureZones[name]; ok {
		return zone
	}
	if zone, ok := strippedPrefectureZones[stripPrefectureSuffix(name)]; ok {
		return zone
	}
	return ""
}
