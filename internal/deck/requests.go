package deck

// Request is one draw operation in a batch update, encoded the way the
// rendering target's JSON API expects it.
type Request = map[string]any

// Slide canvas in PT. All geometry below is absolute on this canvas.
const (
	slideWidthPT  = 720.0
	slideHeightPT = 405.0
)

func rgb(c Color) map[string]any {
	return map[string]any{"red": c.R, "green": c.G, "blue": c.B}
}

func pt(v float64) map[string]any {
	return map[string]any{"magnitude": v, "unit": "PT"}
}

// frame positions an element on a page at an absolute PT offset.
func frame(pageID string, w, h, x, y float64) map[string]any {
	return map[string]any{
		"pageObjectId": pageID,
		"size": map[string]any{
			"width":  pt(w),
			"height": pt(h),
		},
		"transform": map[string]any{
			"scaleX":     1,
			"scaleY":     1,
			"translateX": x,
			"translateY": y,
			"unit":       "PT",
		},
	}
}

func createSlide(id, layout string) Request {
	return Request{
		"createSlide": map[string]any{
			"objectId":             id,
			"slideLayoutReference": map[string]any{"predefinedLayout": layout},
		},
	}
}

func pageBackground(id string, c Color) Request {
	return Request{
		"updatePageProperties": map[string]any{
			"objectId": id,
			"pageProperties": map[string]any{
				"pageBackgroundFill": map[string]any{
					"solidFill": map[string]any{"color": map[string]any{"rgbColor": rgb(c)}},
				},
			},
			"fields": "pageBackgroundFill",
		},
	}
}

func createShape(id, pageID, shapeType string, w, h, x, y float64) Request {
	return Request{
		"createShape": map[string]any{
			"objectId":          id,
			"shapeType":         shapeType,
			"elementProperties": frame(pageID, w, h, x, y),
		},
	}
}

func textBox(id, pageID string, w, h, x, y float64) Request {
	return createShape(id, pageID, "TEXT_BOX", w, h, x, y)
}

func insertText(id, text string) Request {
	return Request{
		"insertText": map[string]any{
			"objectId": id,
			"text":     text,
		},
	}
}

func textStyle(id string, sizePT float64, c Color, bold bool) Request {
	return Request{
		"updateTextStyle": map[string]any{
			"objectId": id,
			"style": map[string]any{
				"fontSize":        pt(sizePT),
				"foregroundColor": map[string]any{"opaqueColor": map[string]any{"rgbColor": rgb(c)}},
				"bold":            bold,
			},
			"fields": "fontSize,foregroundColor,bold",
		},
	}
}

func textStyleFont(id string, sizePT float64, c Color, bold bool, family string) Request {
	return Request{
		"updateTextStyle": map[string]any{
			"objectId": id,
			"style": map[string]any{
				"fontSize":        pt(sizePT),
				"fontFamily":      family,
				"foregroundColor": map[string]any{"opaqueColor": map[string]any{"rgbColor": rgb(c)}},
				"bold":            bold,
			},
			"fields": "fontSize,fontFamily,foregroundColor,bold",
		},
	}
}

func solidFill(id string, c Color) Request {
	return Request{
		"updateShapeProperties": map[string]any{
			"objectId": id,
			"shapeProperties": map[string]any{
				"shapeBackgroundFill": map[string]any{
					"solidFill": map[string]any{"color": map[string]any{"rgbColor": rgb(c)}},
				},
				"outline": map[string]any{"propertyState": "NOT_RENDERED"},
			},
			"fields": "shapeBackgroundFill,outline",
		},
	}
}

func solidFillAlpha(id string, c Color, alpha float64) Request {
	return Request{
		"updateShapeProperties": map[string]any{
			"objectId": id,
			"shapeProperties": map[string]any{
				"shapeBackgroundFill": map[string]any{
					"solidFill": map[string]any{
						"color": map[string]any{"rgbColor": rgb(c)},
						"alpha": alpha,
					},
				},
				"outline": map[string]any{"propertyState": "NOT_RENDERED"},
			},
			"fields": "shapeBackgroundFill,outline",
		},
	}
}

func outlineOnly(id string, c Color, weightPT float64) Request {
	return Request{
		"updateShapeProperties": map[string]any{
			"objectId": id,
			"shapeProperties": map[string]any{
				"outline": map[string]any{
					"outlineFill": map[string]any{
						"solidFill": map[string]any{"color": map[string]any{"rgbColor": rgb(c)}},
					},
					"weight": pt(weightPT),
				},
			},
			"fields": "outline",
		},
	}
}

func centerText(id string) Request {
	return Request{
		"updateParagraphStyle": map[string]any{
			"objectId": id,
			"style":    map[string]any{"alignment": "CENTER"},
			"fields":   "alignment",
		},
	}
}

func paragraphSpacing(id string, lineSpacing, spaceAbovePT float64) Request {
	return Request{
		"updateParagraphStyle": map[string]any{
			"objectId": id,
			"style": map[string]any{
				"lineSpacing": lineSpacing,
				"spaceAbove":  pt(spaceAbovePT),
			},
			"fields": "lineSpacing,spaceAbove",
		},
	}
}

func createImage(id, pageID, url string, w, h, x, y float64) Request {
	return Request{
		"createImage": map[string]any{
			"objectId":          id,
			"url":               url,
			"elementProperties": frame(pageID, w, h, x, y),
		},
	}
}

func createTable(id, pageID string, rows, cols int, w, h, x, y float64) Request {
	return Request{
		"createTable": map[string]any{
			"objectId":          id,
			"rows":              rows,
			"columns":           cols,
			"elementProperties": frame(pageID, w, h, x, y),
		},
	}
}

func cellText(tableID string, row, col int, text string) Request {
	return Request{
		"insertText": map[string]any{
			"objectId": tableID,
			"cellLocation": map[string]any{
				"rowIndex":    row,
				"columnIndex": col,
			},
			"text": text,
		},
	}
}
