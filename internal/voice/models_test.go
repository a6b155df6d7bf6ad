package voice

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDescribe(t *testing.T) {
	tests := []struct {
		model string
		want  string
	}{
		{model: "zingai_1", want: "かわいいマスコットキャラクターのような声"},
		{model: "seinen_2", want: "さわやかな関西弁のお兄さんの声"},
		{model: "robot_9", want: "robot_9の声"},
	}
	for _, tt := range tests {
		t.Run(tt.model, func(t *testing.T) {
			assert.Equal(t, tt.want, Describe(tt.model))
		})
	}
}

func TestModels(t *testing.T) {
	got := Models()
	assert.Len(t, got, 22)
	assert.True(t, IsKnown(DefaultModel))
	assert.False(t, IsKnown("robot_9"))
	for i := 1; i < len(got); i++ {
		assert.Less(t, got[i-1].Name, got[i].Name)
	}
}
