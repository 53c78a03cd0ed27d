package yjqy

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestQueries(t *testing.T) {
	site := newFakeSite(t)
	client := site.client(t)

	queries, err := client.Queries(context.Background(), "yjyz")
	require.NoError(t, err)
	require.Equal(t, []Query{
		{Id: 3, Label: "学位申请"},
		{Id: 7, Label: "2023年中考成绩"},
		{Id: 12, Label: "2023年高考录取"},
	}, queries)
	require.Equal(t, []string{"GET /sc/yjyz/stu_chaxun.php"}, site.requests)
}

func TestQueriesNonNumericValue(t *testing.T) {
	site := newFakeSite(t)
	site.overrides["/sc/yjyz/stu_chaxun.php"] = `<table><tr><td>
		<select name="xmid">
			<option value="1">中考</option>
			<option value="abc">高考</option>
		</select>
	</td></tr></table>`
	client := site.client(t)

	queries, err := client.Queries(context.Background(), "yjyz")
	require.Nil(t, queries)

	var parseErr *ParseError
	require.True(t, errors.As(err, &parseErr))
	require.Equal(t, "/sc/yjyz/stu_chaxun.php", parseErr.Page)
}

func TestQueriesMissingValue(t *testing.T) {
	site := newFakeSite(t)
	site.overrides["/sc/yjyz/stu_chaxun.php"] = `<table><tr><td>
		<select name="xmid"><option>中考</option></select>
	</td></tr></table>`
	client := site.client(t)

	_, err := client.Queries(context.Background(), "yjyz")
	var parseErr *ParseError
	require.True(t, errors.As(err, &parseErr))
}

func TestQueriesTransportError(t *testing.T) {
	site := newFakeSite(t)
	site.status["/sc/yjsyxx/stu_chaxun.php"] = http.StatusInternalServerError
	client := site.client(t)

	_, err := client.Queries(context.Background(), "yjsyxx")
	var transportErr *TransportError
	require.True(t, errors.As(err, &transportErr))
	require.Equal(t, http.StatusInternalServerError, transportErr.StatusCode)
}

func TestInputColumns(t *testing.T) {
	site := newFakeSite(t)
	client := site.client(t)

	columns, err := client.InputColumns(context.Background(), "yjyz", 12)
	require.NoError(t, err)
	require.Equal(t, []InputColumn{
		{Id: "xjh_inf", Text: "学籍号"},
		{Id: "name_inf", Text: "姓名"},
	}, columns)

	require.Len(t, site.forms, 1)
	require.Equal(t, "12", site.forms[0].Get("xmid"))
	require.False(t, site.forms[0].Has("guanxi"))
}
