// Copyright 2026 The Kiln Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package modelio

import (
	"encoding/json"
	"fmt"

	"github.com/kiln-ml/kiln/internal/container"
)

// configEnvelope is the JSON carried by the container's model_config
// attribute: the model kind under "class_name" and the recorded
// construction arguments under "config".
type configEnvelope struct {
	ClassName string `json:"class_name"`
	Config    Config `json:"config"`
}

// Save writes the model's weights and its recorded construction config
// to a .kiln container at path.
//
// The config travels as the container's model_config attribute, so the
// file alone is enough to rebuild the architecture later.
func Save(m Model, path string) error {
	blob, err := json.Marshal(configEnvelope{
		ClassName: m.Kind(),
		Config:    m.Config(),
	})
	if err != nil {
		return fmt.Errorf("save %s: failed to encode model config: %w", path, err)
	}

	w, err := container.Create(path)
	if err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	defer func() {
		_ = w.Close()
	}()

	attrs := map[string]string{container.ModelConfigAttr: string(blob)}
	if err := w.WriteStateDict(m.StateDict(), m.Kind(), attrs); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}

	return w.Close()
}
