// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"context"
	"errors"
	"log/slog"
	"maps"
	"net/http"
	"slices"

	"github.com/auxility/site/internal/contact"
	"github.com/auxility/site/internal/copytext"
	"github.com/auxility/site/internal/i18n"
)

// ContactSubmitter accepts contact form submissions.
// *contact.Service satisfies it.
type ContactSubmitter interface {
	Submit(ctx context.Context, form contact.Form) (contact.Result, error)
}

// CopyTables resolves the copy table for a language.
// *copytext.Resolver satisfies it.
type CopyTables interface {
	Table(lang i18n.Language) copytext.Table
}

// ContactHandler handles contact form submissions.
type ContactHandler struct {
	service ContactSubmitter
	copy    CopyTables
	logger  *slog.Logger
}

// NewContactHandler creates a contact handler. Messages are localized
// through copy.
func NewContactHandler(service ContactSubmitter, copy CopyTables, logger *slog.Logger) *ContactHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &ContactHandler{service: service, copy: copy, logger: logger}
}

// Submit handles POST /api/contact.
//
// Invalid forms answer 422 with a localized message per field. A delivery
// failure answers 502 with the message to show; the submission stays in
// the outbox and is retried.
func (h *ContactHandler) Submit(w http.ResponseWriter, r *http.Request) {
	lang, ok := requestLanguage(w, r, h.logger)
	if !ok {
		return
	}

	var form contact.Form
	if err := decodeJSON(w, r, &form); err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	if _, ok := i18n.ParseLanguage(string(form.Language)); !ok {
		form.Language = lang
	}
	table := h.copy.Table(lang)

	res, err := h.service.Submit(r.Context(), form)
	if err != nil {
		var verrs contact.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			names := slices.Sorted(maps.Keys(verrs))
			fields := make(map[string]string, len(verrs))
			for _, field := range names {
				fields[field] = table.Get(verrs[field])
			}
			writeJSON(w, http.StatusUnprocessableEntity, map[string]any{
				"success": false,
				"error":   fields[names[0]],
				"fields":  fields,
			})
			return
		}
		h.logger.Error("failed to store contact submission", "error", err)
		writeJSONError(w, http.StatusInternalServerError, table.Get(contact.ErrKeyFailed))
		return
	}

	if !res.Success {
		writeJSON(w, http.StatusBadGateway, map[string]any{
			"success": false,
			"id":      res.ID,
			"error":   table.Get(res.Error),
		})
		return
	}

	writeJSONSuccess(w, map[string]any{
		"id":          res.ID,
		"demo":        res.Demo,
		"title":       table.Get("contact_toast_success"),
		"description": table.Get("contact_toast_success_description"),
	})
}
