/*
 * Copyright 2025 Carver Automation Corporation.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package history

import "errors"

var (
	ErrFailedToBeginTx   = errors.New("history: failed to begin transaction")
	ErrFailedToScan      = errors.New("history: failed to scan row")
	ErrFailedToQuery     = errors.New("history: failed to query")
	ErrFailedToInsert    = errors.New("history: failed to insert")
	ErrFailedToInit      = errors.New("history: failed to initialize schema")
	ErrFailedToEnableWAL = errors.New("history: failed to enable WAL mode")
	ErrFailedOpenDB      = errors.New("history: failed to open database")
	ErrFailedToClean     = errors.New("history: failed to clean old data")
	ErrRunNotFound       = errors.New("history: run not found")
)
