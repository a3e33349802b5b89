// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package config loads hearth's YAML configuration.
//
// The file is named by the --config flag ([LoadFile]) or the
// HEARTH_CONFIG environment variable ([Load]). Nothing is discovered
// automatically: without either, [Load] returns [ErrNoConfig] and the
// caller decides whether [Default] is acceptable.
//
// A file may carry development and kiosk sections that override the
// base values when environment matches. The kiosk environment also
// defaults to the high-contrast theme.
//
// Path fields expand ${HOME}, ${HEARTH_ROOT}, and ${VAR:-default}
// after overrides are applied.
package config
