package itinerary

import (
	"github.com/tabi-shiori/shiori/internal/icon"
	"github.com/tabi-shiori/shiori/internal/model"
)

// Built-in trip names
const (
	Ehime      = "ehime"
	EhimeRoute = "ehime-route"
)

// ehimeTrip is the two-day Ehime plan without route maps
func ehimeTrip() *model.Trip {
	return &model.Trip{
		Title: "愛媛 1泊2日プラン",
		Page: model.PageInfo{
			Heading:  "愛媛 1泊2日の旅",
			Subtitle: "絶景と癒やしを巡る、よくばりプラン",
			Icon:     icon.Mountain,
			Footer:   "この旅のしおりで、最高の愛媛旅行を！",
		},
		Days: []model.Day{
			{
				Day:   1,
				Title: "四国カルスト + 道後温泉",
				Icon:  icon.Mountain,
				Schedule: []model.ScheduleEntry{
					{Time: "09:00", Event: "松山空港着 → レンタカー受取", Icon: icon.Plane, URL: "https://www.matsuyama-airport.co.jp/"},
					{Time: "09:15", Event: "松山出発 → 四国カルストへ（約2.5h）", Icon: icon.Car},
					{Time: "11:45", Event: "道の駅 天空の郷さんさん（休憩）", Icon: icon.Coffee, URL: "https://kuma-kanko.com/spot/spot2936/"},
					{Time: "12:30", Event: "四国カルスト（天狗高原・カルストテラス・絶景ドライブ）", Icon: icon.Mountain, URL: "https://shikoku-tourism.com/feature/karusuto/top"},
					{Time: "14:30", Event: "下山開始（約2.5h）", Icon: icon.Car},
					{Time: "17:00", Event: "道後温泉本館 入浴", Icon: icon.Bath, URL: "https://dogo.jp/"},
					{Time: "18:30", Event: "ホテルチェックイン（松山市内）", Icon: icon.Hotel},
					{Time: "19:00", Event: "夜ご飯：松山市内の居酒屋", Icon: icon.UtensilsCrossed},
					{Time: "21:30", Event: "ホテル戻り・就寝", Icon: icon.Hotel},
				},
			},
			{
				Day:   2,
				Title: "しまなみ海道ドライブ",
				Icon:  icon.Waves,
				Schedule: []model.ScheduleEntry{
					{Time: "09:30", Event: "ホテル出発", Icon: icon.Hotel},
					{Time: "10:30", Event: "下灘駅（写真スポット）", Icon: icon.Camera, URL: "https://www.city.iyo.lg.jp/machizukuri/kanko/guidemap/jrshimonada.html"},
					{Time: "11:30", Event: "道の駅ふたみ（海沿い休憩）", Icon: icon.Waves, URL: "https://iyokankou.jp/spot/spot-1869/"},
					{Time: "13:00", Event: "来島海峡SA（大橋の絶景展望）", Icon: icon.TowerControl, URL: "https://s-leading.co.jp/kurushima"},
					{Time: "13:30", Event: "昼食：今治グルメ（焼豚玉子飯など）", Icon: icon.UtensilsCrossed},
					{Time: "14:30", Event: "亀老山展望公園（しまなみ随一の絶景）", Icon: icon.Mountain, URL: "https://www.iyokannet.jp/spot/191"},
					{Time: "16:30", Event: "今治市内カフェ or 道の駅で休憩", Icon: icon.Coffee},
					{Time: "17:30", Event: "松山空港へ移動（約1h）", Icon: icon.Car},
					{Time: "18:30", Event: "空港到着 → 軽食・休憩", Icon: icon.Coffee},
					{Time: "20:00", Event: "フライト", Icon: icon.Plane},
				},
			},
		},
		Budget: model.Budget{
			Title: "費用概算（1人あたり）",
			Items: []model.BudgetItem{
				{Item: "車関連", Cost: "約8,800円"},
				{Item: "飛行機", Cost: "14,000円"},
				{Item: "宿泊", Cost: "5,000円"},
				{Item: "食事", Cost: "7,000円"},
				{Item: "食べ歩き・カフェ", Cost: "2,500円"},
				{Item: "観光", Cost: "500円"},
			},
			Total: "約36,300円／人",
		},
		Notes: model.Notes{
			Title: "プランのポイント",
			Items: []string{
				"朝はゆっくりチェックアウトできる",
				"2日目の観光時間はタイト（空港まで直行に近い流れ）",
				"待ち時間が減るので無駄がない",
			},
		},
	}
}

// ehimeRouteTrip is the same plan with a directions map on each day and no subtitle
func ehimeRouteTrip() *model.Trip {
	trip := ehimeTrip()
	trip.Page.Subtitle = ""
	trip.Days[0].Route = &model.Route{
		Origin:      "松山空港",
		Destination: "松山市駅",
		Waypoints:   []string{"道の駅 天空の郷さんさん", "四国カルスト 天狗高原", "道後温泉本館"},
		Language:    "ja",
		Region:      "jp",
	}
	trip.Days[1].Route = &model.Route{
		Origin:      "松山市駅",
		Destination: "松山空港",
		Waypoints:   []string{"下灘駅", "道の駅ふたみ", "来島海峡SA", "亀老山展望公園"},
		Language:    "ja",
		Region:      "jp",
	}
	return trip
}
