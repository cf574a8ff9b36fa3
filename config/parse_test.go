package config_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/markbench/config"
)

var _ = DescribeTable("ParseValue",
	func(in string, want int32) {
		Expect(config.ParseValue(in)).To(Equal(want))
	},
	Entry("decimal", "2000", int32(2000)),
	Entry("zero", "0", int32(0)),
	Entry("negative", "-12", int32(-12)),
	Entry("hex lower", "0x66", int32(0x66)),
	Entry("hex upper", "0X3415", int32(0x3415)),
	Entry("hex digits upper case", "0xABcd", int32(0xabcd)),
	Entry("kilo", "2K", int32(2048)),
	Entry("mega", "1M", int32(1024*1024)),
	Entry("hex kilo", "0x2K", int32(2048)),
	Entry("stops at garbage", "12ab", int32(12)),
	Entry("no digits", "abc", int32(0)),
	Entry("empty", "", int32(0)),
	Entry("lower k is not a suffix", "3k", int32(3)),
)
