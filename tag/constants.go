package tag

// Delimiters of nested data.
const (
	Item                     Tag = 0xFFFEE000
	ItemDelimitationItem     Tag = 0xFFFEE00D
	SequenceDelimitationItem Tag = 0xFFFEE0DD
)

// Command elements.
const (
	CommandGroupLength        Tag = 0x00000000
	AffectedSOPClassUID       Tag = 0x00000002
	RequestedSOPClassUID      Tag = 0x00000003
	CommandField              Tag = 0x00000100
	MessageID                 Tag = 0x00000110
	MessageIDBeingRespondedTo Tag = 0x00000120
	MoveDestination           Tag = 0x00000600
	Priority                  Tag = 0x00000700
	CommandDataSetType        Tag = 0x00000800
	Status                    Tag = 0x00000900
	AffectedSOPInstanceUID    Tag = 0x00001000
	RequestedSOPInstanceUID   Tag = 0x00001001
	NumberOfRemainingSubops   Tag = 0x00001020
	NumberOfCompletedSubops   Tag = 0x00001021
	NumberOfFailedSubops      Tag = 0x00001022
	NumberOfWarningSubops     Tag = 0x00001023
)

// File meta information.
const (
	FileMetaInformationGroupLength Tag = 0x00020000
	FileMetaInformationVersion     Tag = 0x00020001
	MediaStorageSOPClassUID        Tag = 0x00020002
	MediaStorageSOPInstanceUID     Tag = 0x00020003
	TransferSyntaxUID              Tag = 0x00020010
	ImplementationClassUID         Tag = 0x00020012
	ImplementationVersionName      Tag = 0x00020013
	SourceApplicationEntityTitle   Tag = 0x00020016
)

// Frequently used data set elements.
const (
	SpecificCharacterSet           Tag = 0x00080005
	ImageType                      Tag = 0x00080008
	InstanceCreationDate           Tag = 0x00080012
	InstanceCreationTime           Tag = 0x00080013
	SOPClassUID                    Tag = 0x00080016
	SOPInstanceUID                 Tag = 0x00080018
	StudyDate                      Tag = 0x00080020
	SeriesDate                     Tag = 0x00080021
	AcquisitionDate                Tag = 0x00080022
	ContentDate                    Tag = 0x00080023
	AcquisitionDateTime            Tag = 0x0008002A
	StudyTime                      Tag = 0x00080030
	SeriesTime                     Tag = 0x00080031
	ContentTime                    Tag = 0x00080033
	AccessionNumber                Tag = 0x00080050
	Modality                       Tag = 0x00080060
	Manufacturer                   Tag = 0x00080070
	InstitutionName                Tag = 0x00080080
	ReferringPhysicianName         Tag = 0x00080090
	StudyDescription               Tag = 0x00081030
	SeriesDescription              Tag = 0x0008103E
	ReferencedSOPClassUID          Tag = 0x00081150
	ReferencedSOPInstanceUID       Tag = 0x00081155
	ReferencedImageSequence        Tag = 0x00081140
	PatientName                    Tag = 0x00100010
	PatientID                      Tag = 0x00100020
	PatientBirthDate               Tag = 0x00100030
	PatientSex                     Tag = 0x00100040
	PatientAge                     Tag = 0x00101010
	PatientWeight                  Tag = 0x00101030
	SliceThickness                 Tag = 0x00180050
	StudyInstanceUID               Tag = 0x0020000D
	SeriesInstanceUID              Tag = 0x0020000E
	StudyID                        Tag = 0x00200010
	SeriesNumber                   Tag = 0x00200011
	InstanceNumber                 Tag = 0x00200013
	ImagePositionPatient           Tag = 0x00200032
	ImageOrientationPatient        Tag = 0x00200037
	SourceImageIDs                 Tag = 0x00203100
	SamplesPerPixel                Tag = 0x00280002
	PhotometricInterpretation      Tag = 0x00280004
	NumberOfFrames                 Tag = 0x00280008
	FrameIncrementPointer          Tag = 0x00280009
	Rows                           Tag = 0x00280010
	Columns                        Tag = 0x00280011
	PixelSpacing                   Tag = 0x00280030
	BitsAllocated                  Tag = 0x00280100
	BitsStored                     Tag = 0x00280101
	HighBit                        Tag = 0x00280102
	PixelRepresentation            Tag = 0x00280103
	SmallestImagePixelValue        Tag = 0x00280106
	WindowCenter                   Tag = 0x00281050
	WindowWidth                    Tag = 0x00281051
	RescaleIntercept               Tag = 0x00281052
	RescaleSlope                   Tag = 0x00281053
	RedPaletteColorLookupTableData Tag = 0x00281201
	ContentSequence                Tag = 0x0040A730
	CurveData                      Tag = 0x50003000
	OverlayRows                    Tag = 0x60000010
	OverlayColumns                 Tag = 0x60000011
	OverlayData                    Tag = 0x60003000
	FloatPixelData                 Tag = 0x7FE00008
	DoubleFloatPixelData           Tag = 0x7FE00009
	PixelData                      Tag = 0x7FE00010
	DataSetTrailingPadding         Tag = 0xFFFCFFFC
)
