// Copyright (C) 2025 StudyHub (support@studyhub.app)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package content

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPaginateBounds(t *testing.T) {
	items := []int{1, 2, 3, 4, 5, 6, 7}

	assert.Equal(t, []int{1, 2, 3}, Paginate(items, 1, 3))
	assert.Equal(t, []int{4, 5, 6}, Paginate(items, 2, 3))
	assert.Equal(t, []int{7}, Paginate(items, 3, 3), "last page may be short")
	assert.Empty(t, Paginate(items, 4, 3), "past the end is empty, not a panic")
	assert.Empty(t, Paginate(items, 0, 3))
	assert.Empty(t, Paginate(items, -1, 3))
	assert.Empty(t, Paginate([]int{}, 1, 3))
}

func TestPageCount(t *testing.T) {
	assert.Equal(t, 0, PageCount(0, 9))
	assert.Equal(t, 1, PageCount(1, 9))
	assert.Equal(t, 1, PageCount(9, 9))
	assert.Equal(t, 2, PageCount(10, 9))
	assert.Equal(t, 3, PageCount(25, 9))
	assert.Equal(t, 0, PageCount(5, 0))
}

func TestClampPerPage(t *testing.T) {
	assert.Equal(t, 6, ClampPerPage(6))
	assert.Equal(t, 24, ClampPerPage(24))
	assert.Equal(t, DefaultPerPage, ClampPerPage(7))
	assert.Equal(t, DefaultPerPage, ClampPerPage(0))
	assert.Equal(t, DefaultPerPage, ClampPerPage(-3))
}
