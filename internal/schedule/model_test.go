package schedule

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeWeekdays(t *testing.T) {
	tests := []struct {
		name    string
		in      []string
		want    string
		wantErr bool
	}{
		{name: "ordered", in: []string{"mon", "wed", "fri"}, want: "mon,wed,fri"},
		{name: "reorders to week order", in: []string{"fri", "mon"}, want: "mon,fri"},
		{name: "deduplicates", in: []string{"tue", "tue", "thu"}, want: "tue,thu"},
		{name: "case and whitespace", in: []string{" Mon", "SUN "}, want: "mon,sun"},
		{name: "full week", in: []string{"sun", "sat", "fri", "thu", "wed", "tue", "mon"}, want: "mon,tue,wed,thu,fri,sat,sun"},
		{name: "empty", in: nil, wantErr: true},
		{name: "unknown day", in: []string{"mon", "funday"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NormalizeWeekdays(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidWeekday)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSplitWeekdays(t *testing.T) {
	assert.Equal(t, []string{"mon", "fri"}, SplitWeekdays("mon,fri"))
	assert.Nil(t, SplitWeekdays(""))
}
