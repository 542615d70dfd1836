package handler

import (
	"context"
	"net/http"
	"strconv"

	"move-market/internal/domain/region"
	"move-market/internal/domain/request"
	"move-market/internal/ports"
)

func (handler *MarketHTTPHandler) handleRequestList(w http.ResponseWriter, r *http.Request) {
	ctx := handler.withReqID(r.Context(), r)

	userID, ok := handler.claimsUserID(ctx, w, r)
	if !ok {
		return
	}

	filters, ok := handler.parseFilters(ctx, w, r)
	if !ok {
		return
	}

	result, err := handler.svc.GetDriverRequestList(ctx, userID, filters)
	if err != nil {
		handler.serviceError(ctx, w, err)
		return
	}
	handler.jsonResponse(ctx, w, http.StatusOK, result)
}

func (handler *MarketHTTPHandler) handleDesignatedList(w http.ResponseWriter, r *http.Request) {
	ctx := handler.withReqID(r.Context(), r)

	userID, ok := handler.claimsUserID(ctx, w, r)
	if !ok {
		return
	}

	filters, ok := handler.parseFilters(ctx, w, r)
	if !ok {
		return
	}

	result, err := handler.svc.GetDriverDesignatedRequestList(ctx, userID, filters)
	if err != nil {
		handler.serviceError(ctx, w, err)
		return
	}
	handler.jsonResponse(ctx, w, http.StatusOK, result)
}

func (handler *MarketHTTPHandler) handleRejectedList(w http.ResponseWriter, r *http.Request) {
	ctx := handler.withReqID(r.Context(), r)

	userID, ok := handler.claimsUserID(ctx, w, r)
	if !ok {
		return
	}

	page, ok := handler.queryInt(ctx, w, r, "page")
	if !ok {
		return
	}
	pageSize, ok := handler.queryInt(ctx, w, r, "pageSize")
	if !ok {
		return
	}

	result, err := handler.svc.GetDriverRejectedEstimates(ctx, userID, page, pageSize)
	if err != nil {
		handler.serviceError(ctx, w, err)
		return
	}
	handler.jsonResponse(ctx, w, http.StatusOK, result)
}

// parseFilters coerces the listing query string. Absent parameters stay
// at their zero values so the service applies its own defaults.
func (handler *MarketHTTPHandler) parseFilters(ctx context.Context, w http.ResponseWriter, r *http.Request) (ports.RequestFilters, bool) {
	var filters ports.RequestFilters
	q := r.URL.Query()

	var ok bool
	if filters.Page, ok = handler.queryInt(ctx, w, r, "page"); !ok {
		return filters, false
	}
	if filters.PageSize, ok = handler.queryInt(ctx, w, r, "pageSize"); !ok {
		return filters, false
	}

	if raw := q.Get("movingType"); raw != "" {
		mt, err := request.ParseMovingType(raw)
		if err != nil {
			handler.httpError(ctx, w, http.StatusBadRequest, "invalid movingType: "+raw, err)
			return filters, false
		}
		filters.MovingType = &mt
	}

	if raw := q.Get("region"); raw != "" {
		code, err := region.ParseCode(raw)
		if err != nil {
			handler.httpError(ctx, w, http.StatusBadRequest, "invalid region: "+raw, err)
			return filters, false
		}
		filters.Region = &code
	}

	if raw := q.Get("isDesignated"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			handler.httpError(ctx, w, http.StatusBadRequest, "invalid isDesignated: "+raw, err)
			return filters, false
		}
		filters.IsDesignated = &v
	}

	sortMode, err := request.ParseSortMode(q.Get("sort"))
	if err != nil {
		handler.httpError(ctx, w, http.StatusBadRequest, "invalid sort: "+q.Get("sort"), err)
		return filters, false
	}
	filters.Sort = sortMode

	return filters, true
}

// queryInt reads an optional integer query parameter; absent means 0.
func (handler *MarketHTTPHandler) queryInt(ctx context.Context, w http.ResponseWriter, r *http.Request, name string) (int, bool) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, true
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		handler.httpError(ctx, w, http.StatusBadRequest, "invalid "+name+": "+raw, err)
		return 0, false
	}
	return v, true
}
