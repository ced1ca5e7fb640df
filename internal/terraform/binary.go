package terraform

import (
	"os/exec"
)

// Binary defines the interface for the planning tool we shell out to.
type Binary interface {
	Command() string
	Name() string
}

// TerraformBinary implements Binary for HashiCorp Terraform.
type TerraformBinary struct{}

func (b *TerraformBinary) Command() string {
	return "terraform"
}

func (b *TerraformBinary) Name() string {
	return "Terraform"
}

// TofuBinary implements Binary for OpenTofu.
type TofuBinary struct{}

func (b *TofuBinary) Command() string {
	return "tofu"
}

func (b *TofuBinary) Name() string {
	return "OpenTofu"
}

// DetectBinary picks the planning tool. An explicit override wins;
// otherwise prefer terraform, fall back to tofu if only that is on
// PATH. Defaults to terraform so the eventual "command not found"
// error names the tool most users expect.
func DetectBinary(override string) Binary {
	switch override {
	case "terraform":
		return &TerraformBinary{}
	case "tofu":
		return &TofuBinary{}
	}
	if _, err := exec.LookPath("terraform"); err == nil {
		return &TerraformBinary{}
	}
	if _, err := exec.LookPath("tofu"); err == nil {
		return &TofuBinary{}
	}
	return &TerraformBinary{}
}
