package request

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/samber/lo"
)

// QueryParams are the optional list filters the API understands. Unset
// fields are omitted from the query string.
type QueryParams struct {
	MerchantRefNum     *string
	EndDate            *string
	Limit              *int
	Offset             *int
	StartDate          *string
	MerchantCustomerID *string
	Fields             *string
}

type QueryOption func(*QueryParams)

func WithMerchantRefNum(v string) QueryOption {
	return func(q *QueryParams) { q.MerchantRefNum = lo.ToPtr(v) }
}

func WithEndDate(v string) QueryOption {
	return func(q *QueryParams) { q.EndDate = lo.ToPtr(v) }
}

func WithLimit(v int) QueryOption {
	return func(q *QueryParams) { q.Limit = lo.ToPtr(v) }
}

func WithOffset(v int) QueryOption {
	return func(q *QueryParams) { q.Offset = lo.ToPtr(v) }
}

func WithStartDate(v string) QueryOption {
	return func(q *QueryParams) { q.StartDate = lo.ToPtr(v) }
}

func WithMerchantCustomerID(v string) QueryOption {
	return func(q *QueryParams) { q.MerchantCustomerID = lo.ToPtr(v) }
}

func WithFields(v string) QueryOption {
	return func(q *QueryParams) { q.Fields = lo.ToPtr(v) }
}

// NewQueryParams applies opts in the order given.
func NewQueryParams(opts ...QueryOption) QueryParams {
	var q QueryParams
	for _, opt := range opts {
		opt(&q)
	}
	return q
}

// Encode renders the query string including the leading "?", or an empty
// string when no parameter is set. Parameters always appear in the order
// merchantRefNum, endDate, limit, offset, startDate, merchantCustomerId,
// fields.
func (q QueryParams) Encode() string {
	pairs := make([]string, 0, 7)
	add := func(name string, value *string) {
		if value != nil {
			pairs = append(pairs, name+"="+url.QueryEscape(*value))
		}
	}
	itoa := func(v *int) *string {
		if v == nil {
			return nil
		}
		return lo.ToPtr(strconv.Itoa(*v))
	}

	add("merchantRefNum", q.MerchantRefNum)
	add("endDate", q.EndDate)
	add("limit", itoa(q.Limit))
	add("offset", itoa(q.Offset))
	add("startDate", q.StartDate)
	add("merchantCustomerId", q.MerchantCustomerID)
	add("fields", q.Fields)

	if len(pairs) == 0 {
		return ""
	}
	return "?" + strings.Join(pairs, "&")
}
