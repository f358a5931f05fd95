package queries_test

import (
	"testing"
	"time"

	"loadboard/internal/core/application/usecases/queries"
	"loadboard/internal/core/domain/model/load"
	"loadboard/internal/pkg/errs"

	"github.com/stretchr/testify/require"
)

func TestSortByFromString(t *testing.T) {
	tests := map[string]struct {
		input   string
		want    queries.SortBy
		wantErr bool
	}{
		"created_at":    {input: "created_at", want: queries.SortByCreatedAt},
		"pickup_date":   {input: "pickup_date", want: queries.SortByPickupDate},
		"rate":          {input: "rate", want: queries.SortByRate},
		"rate_per_mile": {input: "rate_per_mile", want: queries.SortByRatePerMile},
		"unknown":       {input: "distance", wantErr: true},
		"empty":         {input: "", wantErr: true},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			got, err := queries.SortByFromString(tt.input)
			if tt.wantErr {
				require.ErrorIs(t, err, errs.ErrValidation)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
			require.Equal(t, tt.input, got.String())
		})
	}
}

func TestNewListLoadsQuery_Defaults(t *testing.T) {
	query, err := queries.NewListLoadsQuery(queries.ListLoadsParams{})
	require.NoError(t, err)

	params := query.Params()
	require.Equal(t, 1, params.Page)
	require.Equal(t, queries.DefaultPageSize, params.PageSize)
	require.Equal(t, queries.SortByCreatedAt, params.SortBy)
	require.False(t, params.Descending)
}

func TestNewListLoadsQuery_Invalid(t *testing.T) {
	from := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	badStatus := load.Status(99)
	badEquipment := load.EquipmentType("60-foot van")

	tests := map[string]queries.ListLoadsParams{
		"negative page":       {Page: -1},
		"negative page size": {PageSize: -5},
		"oversized page":     {PageSize: queries.MaxPageSize + 1},
		"unknown sort key":   {SortBy: queries.SortBy(42)},
		"unknown status":     {Status: &badStatus},
		"unknown equipment":  {Equipment: &badEquipment},
		"inverted window":    {PickupFrom: &from, PickupTo: &to},
	}

	for name, params := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := queries.NewListLoadsQuery(params)
			require.ErrorIs(t, err, errs.ErrValidation)
		})
	}
}

func TestListLoadsQuery_NotConstructed(t *testing.T) {
	var query queries.ListLoadsQuery
	require.Error(t, query.Validate())
}
