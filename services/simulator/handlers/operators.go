// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/AleutianAI/BlochSim/services/quantum"
	"github.com/AleutianAI/BlochSim/services/simulator/datatypes"
)

// HandleOperators serves the operator catalog.
//
// The catalog is static, so the handler marshals it directly without
// touching any state.
func HandleOperators() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, datatypes.OperatorsResponse{
			Gates:    quantum.GateCatalog(),
			Channels: quantum.ChannelCatalog(),
		})
	}
}
