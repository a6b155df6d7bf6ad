package voice

import (
	"sort"
)

// DefaultModel is used when no model is configured.
const DefaultModel = "zingai_1"

// models maps each voice model served by the API to a description of its character.
var models = map[string]string{
	"ozisan_2":   "普通のおじさんの声",
	"seinen_2":   "さわやかな関西弁のお兄さんの声",
	"oneesan_4":  "安心感のある透き通ったお姉さんの声",
	"syouzyo_6":  "無気力な少女の声",
	"zingai_1":   "かわいいマスコットキャラクターのような声",
	"sutera":     "ステラの声",
	"syounen_1":  "元気な少年の声",
	"syouzyo_4":  "のじゃろりの声",
	"seinen_3":   "ちょっと気弱そうなお兄さんの声",
	"oneesan_2":  "落ち着いた声のお姉さんの声",
	"syouzyo_3":  "ツンデレ系の少女の声",
	"oziisan":    "おじいさんの声",
	"seinen_5":   "声の高い、ちょっとうざそうなお兄さんの声",
	"syouzyo_1":  "普通の少女の声",
	"ozisan_1":   "イケボのおじさんの声",
	"seinen_4":   "声の高い、優しそうなお兄さんの声",
	"oneesan_3":  "声の高いお姉さんの声",
	"obaatyan_1": "おばあちゃんの声",
	"syouzyo_7":  "のんびり無気力な少女の可愛い声",
	"syouzyo_2":  "元気な少女の声",
	"syouzyo_5":  "内気な少女の声",
	"oneesan_1":  "少し声の高めのお姉さんの声",
}

// Model is a voice model and its description.
type Model struct {
	Name        string
	Description string
}

// Describe returns the description of model. Unknown models are described by
// their name.
func Describe(model string) string {
	if description, ok := models[model]; ok {
		return description
	}
	return model + "の声"
}

// IsKnown reports whether model is in the catalogue.
func IsKnown(model string) bool {
	_, ok := models[model]
	return ok
}

// Models returns the catalogue sorted by name.
func Models() []Model {
	result := make([]Model, 0, len(models))
	for name, description := range models {
		result = append(result, Model{Name: name, Description: description})
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Name < result[j].Name
	})
	return result
}
