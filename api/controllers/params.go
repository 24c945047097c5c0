package controllers

import (
	"net/http"
	"strconv"

	"github.com/gestora-app/gestora-backend/pkg/pagination"
	"github.com/go-chi/chi/v5"
)

func listArgs(r *http.Request) pagination.ListArgs {
	q := r.URL.Query()
	page, _ := strconv.Atoi(q.Get("page"))
	perPage, _ := strconv.Atoi(q.Get("per_page"))
	return pagination.ListArgs{
		Page:    page,
		PerPage: perPage,
		Search:  q.Get("search"),
		Status:  q.Get("status"),
	}
}

func pathID(r *http.Request) string {
	return chi.URLParam(r, "id")
}
